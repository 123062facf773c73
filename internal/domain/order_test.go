package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderOpen, OrderClosed, true},
		{OrderOpen, OrderCancelled, true},
		{OrderOpen, OrderPaid, false},
		{OrderClosed, OrderPaid, true},
		{OrderClosed, OrderCancelled, true},
		{OrderClosed, OrderOpen, false},
		{OrderPaid, OrderCancelled, false},
		{OrderCancelled, OrderOpen, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestNewOrder(t *testing.T) {
	tests := []struct {
		name          string
		draft         OrderDraft
		expectedError string
		expectedLines int
	}{
		{
			name:          "valid draft",
			draft:         OrderDraft{Table: " 5 ", PartySize: 3, Lines: []LineInput{{ProductID: 10}, {ProductID: 20, Detail: "sin hielo"}}},
			expectedLines: 2,
		},
		{
			name:          "missing table",
			draft:         OrderDraft{PartySize: 3, Lines: []LineInput{{ProductID: 10}}},
			expectedError: "mesa: table is required",
		},
		{
			name:          "zero party size",
			draft:         OrderDraft{Table: "5", Lines: []LineInput{{ProductID: 10}}},
			expectedError: "personas: party size is required",
		},
		{
			name:          "no lines",
			draft:         OrderDraft{Table: "5", PartySize: 1},
			expectedError: "productos: at least one product is required",
		},
		{
			name:          "unknown product",
			draft:         OrderDraft{Table: "5", PartySize: 1, Lines: []LineInput{{ProductID: 99}}},
			expectedError: "producto 99 not found",
		},
		{
			name:          "inactive product",
			draft:         OrderDraft{Table: "5", PartySize: 1, Lines: []LineInput{{ProductID: 30}}},
			expectedError: `productos: product "Pastel" is inactive`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewOrder(tt.draft, 7, testProducts(), testNow)
			if tt.expectedError != "" {
				assert.EqualError(t, err, tt.expectedError)
				assert.Nil(t, o)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "5", o.Table)
			assert.Equal(t, OrderOpen, o.Status)
			assert.Equal(t, uint64(7), o.WaiterID)
			assert.Len(t, o.Lines, tt.expectedLines)
			for i, l := range o.Lines {
				assert.Equal(t, LinePending, l.Status)
				assert.Equal(t, i, l.Position)
			}
			assert.Equal(t, "sin hielo", o.Lines[1].Detail)
			assert.Equal(t, catBar, o.Lines[1].CategoryID)
		})
	}
}

func TestOrder_PayableTotal(t *testing.T) {
	// Tacos 20 delivered, Sopa 30 delivered, Tacos 20 cancelled, Sopa 30 pending.
	o := orderWith(1, "3", LineDelivered, LineDelivered, LineCancelled, LinePending)
	assert.True(t, money("50").Equal(o.PayableTotal()))
	assert.Equal(t, 3, o.ActiveLines())
}

func TestOrder_Close(t *testing.T) {
	o := orderWith(1, "3", LineDelivered, LinePending, LineDelivered)

	ticket, err := o.Close(testNow)
	require.NoError(t, err)

	assert.Equal(t, OrderClosed, o.Status)
	assert.Equal(t, LineCancelled, o.Lines[1].Status)
	assert.True(t, money("40").Equal(o.Total))
	assert.True(t, money("40").Equal(ticket.Total))
	assert.Len(t, ticket.Lines, 2)
	assert.Equal(t, []uint64{1}, ticket.OrderIDs)
	require.NotNil(t, o.ClosedAt)

	_, err = o.Close(testNow)
	var transition *InvalidTransitionError
	assert.True(t, errors.As(err, &transition))
}

func TestOrder_CloseWithoutActiveLines(t *testing.T) {
	o := orderWith(1, "3", LineCancelled, LineCancelled)
	_, err := o.Close(testNow)
	var state *InvalidStateError
	assert.True(t, errors.As(err, &state))
	assert.Equal(t, OrderOpen, o.Status)
}

func TestOrder_Pay(t *testing.T) {
	tests := []struct {
		name          string
		status        OrderStatus
		payments      []Payment
		expectedError string
		expectedCount int
	}{
		{
			name:          "split payment covering the total",
			status:        OrderClosed,
			payments:      []Payment{{Method: PaymentCash, Amount: money("30")}, {Method: PaymentCard, Amount: money("20")}},
			expectedCount: 2,
		},
		{
			name:          "zero amounts are dropped",
			status:        OrderClosed,
			payments:      []Payment{{Method: PaymentCash, Amount: money("50")}, {Method: PaymentCard, Amount: money("0")}},
			expectedCount: 1,
		},
		{
			name:          "short payment",
			status:        OrderClosed,
			payments:      []Payment{{Method: PaymentCash, Amount: money("49.99")}},
			expectedError: "pagos: payments (49.99) do not cover the total (50.00)",
		},
		{
			name:          "no payments",
			status:        OrderClosed,
			payments:      []Payment{{Method: PaymentCash, Amount: money("0")}},
			expectedError: "pagos: at least one payment with an amount is required",
		},
		{
			name:          "unknown method",
			status:        OrderClosed,
			payments:      []Payment{{Method: "cheque", Amount: money("50")}},
			expectedError: `metodo: unknown payment method "cheque"`,
		},
		{
			name:          "open order cannot be paid",
			status:        OrderOpen,
			payments:      []Payment{{Method: PaymentCash, Amount: money("50")}},
			expectedError: `comanda cannot move from "abierta" to "pagada"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := orderWith(4, "3", LineDelivered, LineDelivered)
			o.Status = tt.status
			o.Total = money("50")

			recorded, err := o.Pay(tt.payments, testNow)
			if tt.expectedError != "" {
				assert.EqualError(t, err, tt.expectedError)
				assert.Equal(t, tt.status, o.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, OrderPaid, o.Status)
			assert.Len(t, recorded, tt.expectedCount)
			for _, p := range recorded {
				require.NotNil(t, p.OrderID)
				assert.Equal(t, uint64(4), *p.OrderID)
			}
		})
	}
}

func TestOrder_Cancel(t *testing.T) {
	o := orderWith(1, "3", LineDelivered, LinePending)
	require.NoError(t, o.Cancel(testNow))
	assert.Equal(t, OrderCancelled, o.Status)
	assert.Equal(t, LineDelivered, o.Lines[0].Status)
	assert.Equal(t, LineCancelled, o.Lines[1].Status)

	assert.Error(t, o.Cancel(testNow))
}

func TestOrder_UnifiedMembersAreLocked(t *testing.T) {
	o := orderWith(1, "3", LineDelivered)
	o.UnifiedOrderID = uptr(9)

	_, err := o.Close(testNow)
	assert.Error(t, err)
	_, err = o.Pay([]Payment{{Method: PaymentCash, Amount: money("20")}}, testNow)
	assert.Error(t, err)
	assert.Error(t, o.Cancel(testNow))
	assert.Equal(t, OrderOpen, o.Status)
}

func TestOrder_ApplyEdit(t *testing.T) {
	draftFrom := func(o *Order) OrderDraft {
		d := OrderDraft{Table: o.Table, PartySize: o.PartySize}
		for _, l := range o.Lines {
			d.Lines = append(d.Lines, LineInput{ID: l.ID, ProductID: l.ProductID, Detail: l.Detail})
		}
		return d
	}

	t.Run("round trip keeps every line", func(t *testing.T) {
		o := orderWith(1, "3", LineDelivered, LinePending, LineCancelled)
		d := draftFrom(o)
		d.Table = "4"
		d.Lines[1].Detail = "sin cebolla"

		added, err := o.ApplyEdit(d, testProducts(), testNow)
		require.NoError(t, err)
		assert.Empty(t, added)
		assert.Equal(t, "4", o.Table)
		assert.Len(t, o.Lines, 3)
		assert.Equal(t, "sin cebolla", o.Lines[1].Detail)
		assert.Equal(t, LineDelivered, o.Lines[0].Status)
	})

	t.Run("omitted pending line is cancelled", func(t *testing.T) {
		o := orderWith(1, "3", LineDelivered, LinePending)
		d := draftFrom(o)
		d.Lines = d.Lines[:1]
		d.Lines = append(d.Lines, LineInput{ProductID: 20})

		added, err := o.ApplyEdit(d, testProducts(), testNow)
		require.NoError(t, err)
		require.Len(t, added, 1)
		assert.Equal(t, uint64(20), added[0].ProductID)
		assert.Len(t, o.Lines, 3)
		assert.Equal(t, LineCancelled, o.Lines[1].Status)
	})

	t.Run("product swap cancels and appends", func(t *testing.T) {
		o := orderWith(1, "3", LinePending)
		d := draftFrom(o)
		d.Lines[0].ProductID = 20

		added, err := o.ApplyEdit(d, testProducts(), testNow)
		require.NoError(t, err)
		require.Len(t, added, 1)
		assert.Equal(t, LineCancelled, o.Lines[0].Status)
		assert.Equal(t, LinePending, o.Lines[1].Status)
		assert.Equal(t, uint64(20), o.Lines[1].ProductID)
	})

	t.Run("dropping a delivered line is rejected", func(t *testing.T) {
		o := orderWith(1, "3", LineDelivered, LinePending)
		d := draftFrom(o)
		d.Lines = d.Lines[1:]

		_, err := o.ApplyEdit(d, testProducts(), testNow)
		var state *InvalidStateError
		require.True(t, errors.As(err, &state))
		assert.Equal(t, LinePending, o.Lines[1].Status)
	})

	t.Run("modifying a cancelled line is rejected", func(t *testing.T) {
		o := orderWith(1, "3", LineCancelled)
		d := draftFrom(o)
		d.Lines[0].Detail = "otra cosa"

		_, err := o.ApplyEdit(d, testProducts(), testNow)
		var state *InvalidStateError
		assert.True(t, errors.As(err, &state))
	})

	t.Run("foreign line id", func(t *testing.T) {
		o := orderWith(1, "3", LinePending)
		d := draftFrom(o)
		d.Lines = append(d.Lines, LineInput{ID: 999, ProductID: 10})

		_, err := o.ApplyEdit(d, testProducts(), testNow)
		var nf *NotFoundError
		assert.True(t, errors.As(err, &nf))
	})

	t.Run("duplicated line id", func(t *testing.T) {
		o := orderWith(1, "3", LinePending)
		d := draftFrom(o)
		d.Lines = append(d.Lines, d.Lines[0])

		_, err := o.ApplyEdit(d, testProducts(), testNow)
		var v *ValidationError
		assert.True(t, errors.As(err, &v))
	})

	t.Run("closed order takes header changes", func(t *testing.T) {
		o := orderWith(1, "3", LineDelivered, LineDelivered)
		o.Status = OrderClosed
		o.Total = money("50")
		d := draftFrom(o)
		d.Table = "7"
		d.PartySize = 4

		added, err := o.ApplyEdit(d, testProducts(), testNow)
		require.NoError(t, err)
		assert.Empty(t, added)
		assert.Equal(t, "7", o.Table)
		assert.Equal(t, 4, o.PartySize)
		assert.True(t, money("50").Equal(o.Total))
	})

	t.Run("closed order rejects new lines", func(t *testing.T) {
		o := orderWith(1, "3", LineDelivered, LineCancelled)
		o.Status = OrderClosed
		o.Total = money("20")
		d := draftFrom(o)
		d.Lines = append(d.Lines, LineInput{ProductID: 20})

		_, err := o.ApplyEdit(d, testProducts(), testNow)
		var state *InvalidStateError
		require.True(t, errors.As(err, &state))
		assert.Len(t, o.Lines, 2)
		assert.True(t, money("20").Equal(o.Total))
	})

	t.Run("paid order is not editable", func(t *testing.T) {
		o := orderWith(1, "3", LineDelivered)
		o.Status = OrderPaid
		_, err := o.ApplyEdit(draftFrom(o), testProducts(), testNow)
		var state *InvalidStateError
		assert.True(t, errors.As(err, &state))
	})
}

func TestOrder_AddLines(t *testing.T) {
	t.Run("open order", func(t *testing.T) {
		o := orderWith(1, "3", LineDelivered)
		added, err := o.AddLines([]LineInput{{ProductID: 20, Detail: "fria"}}, testProducts(), testNow)
		require.NoError(t, err)
		require.Len(t, added, 1)
		assert.Equal(t, LinePending, added[0].Status)
		assert.Len(t, o.Lines, 2)
	})

	t.Run("closed order cannot leave a line unsettled", func(t *testing.T) {
		o := orderWith(1, "3", LineDelivered, LinePending)
		_, err := o.Close(testNow)
		require.NoError(t, err)

		_, err = o.AddLines([]LineInput{{ProductID: 10}}, testProducts(), testNow)
		var state *InvalidStateError
		require.True(t, errors.As(err, &state))
		assert.Len(t, o.Lines, 2)

		_, err = o.Pay([]Payment{{Method: PaymentCash, Amount: money("20")}}, testNow)
		require.NoError(t, err)
		assert.Equal(t, OrderPaid, o.Status)
		for _, l := range o.Lines {
			assert.True(t, l.Status.Terminal(), "line %d left %s", l.ID, l.Status)
		}
	})
}

func TestOrderLine_SetStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    LineStatus
		to      LineStatus
		wantErr bool
	}{
		{"deliver pending", LinePending, LineDelivered, false},
		{"cancel pending", LinePending, LineCancelled, false},
		{"pending to pending", LinePending, LinePending, true},
		{"delivered is terminal", LineDelivered, LineCancelled, true},
		{"cancelled is terminal", LineCancelled, LineDelivered, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := OrderLine{Status: tt.from}
			err := l.SetStatus(tt.to, testNow)
			if tt.wantErr {
				var transition *InvalidTransitionError
				assert.True(t, errors.As(err, &transition))
				assert.Equal(t, tt.from, l.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, l.Status)
			assert.Equal(t, tt.to == LineDelivered, l.DeliveredAt != nil)
		})
	}
}

func TestOrderLine_ResetToPending(t *testing.T) {
	o := orderWith(1, "3", LineDelivered)
	require.NoError(t, o.Lines[0].ResetToPending(o))
	assert.Equal(t, LinePending, o.Lines[0].Status)
	assert.Nil(t, o.Lines[0].DeliveredAt)

	assert.Error(t, o.Lines[0].ResetToPending(o))

	o.Lines[0].Status = LineDelivered
	o.Status = OrderClosed
	var state *InvalidStateError
	assert.True(t, errors.As(o.Lines[0].ResetToPending(o), &state))
}
