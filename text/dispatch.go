package text

import (
	"fmt"

	"github.com/gordonbisnor/pdf-reader/contentstream"
	"github.com/gordonbisnor/pdf-reader/core"
	"github.com/gordonbisnor/pdf-reader/model"
)

// Dispatch feeds parsed content stream operations to the receiver in
// order. Operators that do not affect text are ignored, as are operators
// whose operands have the wrong types.
func (r *PageTextReceiver) Dispatch(operations []contentstream.Operation) error {
	for i, op := range operations {
		if err := r.processOperation(op); err != nil {
			return fmt.Errorf("operation %d (%s): %w", i, op.Operator, err)
		}
	}
	return nil
}

// DispatchBytes parses raw content stream data and dispatches it.
func (r *PageTextReceiver) DispatchBytes(data []byte) error {
	operations, err := contentstream.NewParser(data).Parse()
	if err != nil {
		return fmt.Errorf("parse content stream: %w", err)
	}
	return r.Dispatch(operations)
}

// processOperation processes a single content stream operation
func (r *PageTextReceiver) processOperation(op contentstream.Operation) error {
	switch op.Operator {
	// Graphics state
	case "q":
		r.SaveGraphicsState()
	case "Q":
		return r.RestoreGraphicsState()
	case "cm":
		if m, ok := operandsToMatrix(op.Operands); ok {
			r.ConcatenateMatrix(m)
			return nil
		}
		r.skip(op)

	// Text objects
	case "BT":
		r.BeginText()
	case "ET":
		r.EndText()

	// Text state
	case "Tf":
		if len(op.Operands) == 2 {
			name, ok1 := op.Operands[0].(core.Name)
			size, ok2 := core.Number(op.Operands[1])
			if ok1 && ok2 {
				r.SetTextFont(string(name), size)
				return nil
			}
		}
		r.skip(op)
	case "Tc":
		if v, ok := singleNumber(op.Operands); ok {
			r.SetCharacterSpacing(v)
			return nil
		}
		r.skip(op)
	case "Tw":
		if v, ok := singleNumber(op.Operands); ok {
			r.SetWordSpacing(v)
			return nil
		}
		r.skip(op)
	case "Tz":
		if v, ok := singleNumber(op.Operands); ok {
			r.SetHorizontalScaling(v)
			return nil
		}
		r.skip(op)
	case "TL":
		if v, ok := singleNumber(op.Operands); ok {
			r.SetTextLeading(v)
			return nil
		}
		r.skip(op)
	case "Tr":
		if v, ok := singleNumber(op.Operands); ok {
			r.SetTextRenderingMode(int(v))
			return nil
		}
		r.skip(op)
	case "Ts":
		if v, ok := singleNumber(op.Operands); ok {
			r.SetTextRise(v)
			return nil
		}
		r.skip(op)

	// Text positioning
	case "Tm":
		if m, ok := operandsToMatrix(op.Operands); ok {
			r.SetTextMatrix(m)
			return nil
		}
		r.skip(op)
	case "Td":
		if tx, ty, ok := twoNumbers(op.Operands); ok {
			r.MoveTextPosition(tx, ty)
			return nil
		}
		r.skip(op)
	case "TD":
		if tx, ty, ok := twoNumbers(op.Operands); ok {
			r.MoveTextPositionSetLeading(tx, ty)
			return nil
		}
		r.skip(op)
	case "T*":
		r.MoveToStartOfNextLine()

	// Text showing
	case "Tj":
		if len(op.Operands) == 1 {
			if s, ok := op.Operands[0].(core.String); ok {
				return r.ShowText(s.Bytes())
			}
		}
		r.skip(op)
	case "TJ":
		if len(op.Operands) == 1 {
			if arr, ok := op.Operands[0].(core.Array); ok {
				return r.ShowTextWithPositioning(showItems(arr))
			}
		}
		r.skip(op)
	case "'":
		if len(op.Operands) == 1 {
			if s, ok := op.Operands[0].(core.String); ok {
				return r.MoveToNextLineAndShowText(s.Bytes())
			}
		}
		r.skip(op)
	case "\"":
		if len(op.Operands) == 3 {
			aw, ok1 := core.Number(op.Operands[0])
			ac, ok2 := core.Number(op.Operands[1])
			s, ok3 := op.Operands[2].(core.String)
			if ok1 && ok2 && ok3 {
				return r.SetSpacingNextLineShowText(aw, ac, s.Bytes())
			}
		}
		r.skip(op)

	// XObjects
	case "Do":
		if len(op.Operands) == 1 {
			if name, ok := op.Operands[0].(core.Name); ok {
				return r.InvokeXObject(string(name))
			}
		}
		r.skip(op)
	}

	return nil
}

func (r *PageTextReceiver) skip(op contentstream.Operation) {
	r.logger.Debug("skipping operator with invalid operands", "operator", op.Operator, "operands", len(op.Operands))
}

// showItems converts a TJ array. Elements that are neither strings nor
// numbers are dropped.
func showItems(arr core.Array) []ShowItem {
	items := make([]ShowItem, 0, len(arr))
	for _, obj := range arr {
		if s, ok := obj.(core.String); ok {
			items = append(items, TextItem(s.Bytes()))
			continue
		}
		if n, ok := core.Number(obj); ok {
			items = append(items, DisplacementItem(n))
		}
	}
	return items
}

func singleNumber(operands []core.Object) (float64, bool) {
	if len(operands) != 1 {
		return 0, false
	}
	return core.Number(operands[0])
}

func twoNumbers(operands []core.Object) (float64, float64, bool) {
	if len(operands) != 2 {
		return 0, 0, false
	}
	a, ok1 := core.Number(operands[0])
	b, ok2 := core.Number(operands[1])
	return a, b, ok1 && ok2
}

func operandsToMatrix(operands []core.Object) (model.Matrix, bool) {
	if len(operands) != 6 {
		return model.Matrix{}, false
	}
	vals, ok := core.Array(operands).Numbers()
	if !ok {
		return model.Matrix{}, false
	}
	return model.Matrix{vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]}, true
}
