package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urufarma/lims-web/internal/application/manufacturing"
	"github.com/urufarma/lims-web/internal/domain/entity"
	"github.com/urufarma/lims-web/internal/infrastructure/pdf"
)

func TestTraceReportGenerator_Generate(t *testing.T) {
	at := entity.NewTimestamp(time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC))
	trace := &manufacturing.OrderTrace{
		OrderID: 1,
		Order: &entity.ManufacturingOrder{
			ID: 1, Code: "OM-1", BatchCode: "L-001", Date: "2026-02-01",
			ProductID: 3, Quantity: decimal.NewFromInt(100), Unit: "kg", OperatorID: 2,
		},
		Processes: []manufacturing.ProcessTrace{
			{
				Process:    entity.ManufacturingProcess{ID: 10, OrderID: 1, StateID: 2},
				StateLabel: "en proceso",
				History: []manufacturing.HistoryRow{
					{StateHistoryEntry: entity.StateHistoryEntry{ID: 1, StateID: 1, ChangedByID: 1, Timestamp: at}, StateLabel: "pendiente"},
				},
				Consistent: false,
			},
		},
	}

	out, err := pdf.NewTraceReportGenerator("LIMS").Generate(context.Background(), trace)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestTraceReportGenerator_SinOrden(t *testing.T) {
	out, err := pdf.NewTraceReportGenerator("LIMS").Generate(context.Background(), &manufacturing.OrderTrace{OrderID: 5})
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = pdf.NewTraceReportGenerator("LIMS").Generate(context.Background(), nil)
	assert.Error(t, err)
}
