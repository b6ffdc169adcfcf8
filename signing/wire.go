package signing

import (
	"fmt"

	"github.com/deltabadger/hyperliquid-go/types"
	"github.com/deltabadger/hyperliquid-go/utils"
)

// OrderTypeToWire converts OrderType to wire format
func OrderTypeToWire(orderType types.OrderType) (types.OrderTypeWire, error) {
	wire := types.OrderTypeWire{}

	if orderType.Limit != nil {
		wire.Limit = orderType.Limit
	} else if orderType.Trigger != nil {
		triggerPx, err := utils.FloatToWire(orderType.Trigger.TriggerPx)
		if err != nil {
			return wire, fmt.Errorf("invalid trigger price: %w", err)
		}
		wire.Trigger = &types.TriggerOrderTypeWire{
			IsMarket:  orderType.Trigger.IsMarket,
			TriggerPx: triggerPx,
			Tpsl:      orderType.Trigger.Tpsl,
		}
	} else {
		return wire, fmt.Errorf("invalid order type: must have either limit or trigger")
	}

	return wire, nil
}

// OrderRequestToOrderWire converts an OrderRequest to wire format
func OrderRequestToOrderWire(order types.OrderRequest, asset int) (types.OrderWire, error) {
	limitPx, err := utils.FloatToWire(order.LimitPx)
	if err != nil {
		return types.OrderWire{}, fmt.Errorf("invalid limit price: %w", err)
	}

	sz, err := utils.FloatToWire(order.Sz)
	if err != nil {
		return types.OrderWire{}, fmt.Errorf("invalid size: %w", err)
	}

	orderTypeWire, err := OrderTypeToWire(order.OrderType)
	if err != nil {
		return types.OrderWire{}, err
	}

	wire := types.OrderWire{
		Asset:      asset,
		IsBuy:      order.IsBuy,
		LimitPx:    limitPx,
		Sz:         sz,
		ReduceOnly: order.ReduceOnly,
		OrderType:  orderTypeWire,
	}

	if order.Cloid != nil {
		raw := order.Cloid.ToRaw()
		wire.Cloid = &raw
	}

	return wire, nil
}

// OrderTypeWireToMap converts an order type wire to its canonical map form:
// {"limit": {"tif": ...}} or {"trigger": {"isMarket": ..., "triggerPx": ..., "tpsl": ...}}.
func OrderTypeWireToMap(wire types.OrderTypeWire) (*utils.OrderedMap, error) {
	switch {
	case wire.Limit != nil:
		return utils.NewOrderedMap(
			"limit", utils.NewOrderedMap("tif", string(wire.Limit.Tif)),
		), nil
	case wire.Trigger != nil:
		return utils.NewOrderedMap(
			"trigger", utils.NewOrderedMap(
				"isMarket", wire.Trigger.IsMarket,
				"triggerPx", wire.Trigger.TriggerPx,
				"tpsl", string(wire.Trigger.Tpsl),
			),
		), nil
	default:
		return nil, fmt.Errorf("invalid order type: must have either limit or trigger")
	}
}

// OrderWireToMap converts an order wire to its canonical map form with
// field order a, b, p, s, r, t, c.
func OrderWireToMap(wire types.OrderWire) (*utils.OrderedMap, error) {
	orderType, err := OrderTypeWireToMap(wire.OrderType)
	if err != nil {
		return nil, err
	}

	m := utils.NewOrderedMap(
		"a", wire.Asset,
		"b", wire.IsBuy,
		"p", wire.LimitPx,
		"s", wire.Sz,
		"r", wire.ReduceOnly,
		"t", orderType,
	)
	if wire.Cloid != nil {
		m.Set("c", *wire.Cloid)
	}
	return m, nil
}

// OrderWiresToOrderAction creates an order action from order wires
func OrderWiresToOrderAction(orderWires []types.OrderWire, builder *types.BuilderInfo, grouping types.Grouping) (*utils.OrderedMap, error) {
	orders := make([]any, 0, len(orderWires))
	for _, wire := range orderWires {
		m, err := OrderWireToMap(wire)
		if err != nil {
			return nil, err
		}
		orders = append(orders, m)
	}

	action := utils.NewOrderedMap(
		"type", "order",
		"orders", orders,
		"grouping", string(grouping),
	)
	if builder != nil {
		action.Set("builder", utils.NewOrderedMap("b", builder.B, "f", builder.F))
	}
	return action, nil
}

// ModifyWiresToModifyAction creates a batchModify action from modify wires.
// An order id may be an integer oid or a Cloid, which travels as its raw
// hex string.
func ModifyWiresToModifyAction(modifies []types.ModifyWire) (*utils.OrderedMap, error) {
	wires := make([]any, 0, len(modifies))
	for _, modify := range modifies {
		orderMap, err := OrderWireToMap(modify.Order)
		if err != nil {
			return nil, err
		}
		oid, err := normalizeOid(modify.Oid)
		if err != nil {
			return nil, err
		}
		wires = append(wires, utils.NewOrderedMap("oid", oid, "order", orderMap))
	}
	return utils.NewOrderedMap("type", "batchModify", "modifies", wires), nil
}

func normalizeOid(oid any) (any, error) {
	switch v := oid.(type) {
	case int, int64, uint64:
		return v, nil
	case *types.Cloid:
		return v.ToRaw(), nil
	case types.Cloid:
		return v.ToRaw(), nil
	default:
		return nil, fmt.Errorf("oid must be an integer or Cloid, got %T", oid)
	}
}
