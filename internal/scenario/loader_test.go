package scenario

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vogiaan1904/ticketbottle-marketplace/internal/models"
)

func TestLoad_Basic(t *testing.T) {
	sc, err := Load("testdata/basic.json")
	require.NoError(t, err)

	coffee := models.Coffee{Name: "Indonezia", Price: 1, Acidity: 5.05, RoastLevel: "MEDIUM"}
	tea := models.Tea{Name: "Linden", Price: 9, Type: "Herbal"}

	assert.Equal(t, 8, sc.QueueSizePerProducer)
	assert.Equal(t, coffee, sc.Products["id1"])
	assert.Equal(t, tea, sc.Products["id2"])

	require.Len(t, sc.Producers, 1)
	prod := sc.Producers[0]
	assert.Equal(t, "prod1", prod.Name)
	assert.Equal(t, 150*time.Millisecond, prod.RepublishWait)
	require.Len(t, prod.Catalog, 2)
	assert.Equal(t, CatalogEntry{ProductID: "id1", Product: coffee, Quantity: 2, Wait: 180 * time.Millisecond}, prod.Catalog[0])
	assert.Equal(t, 1, prod.Catalog[1].Quantity)

	require.Len(t, sc.Consumers, 1)
	cons := sc.Consumers[0]
	assert.Equal(t, "cons1", cons.Name)
	assert.Equal(t, 100*time.Millisecond, cons.RetryWait)
	require.Len(t, cons.Carts, 1)
	require.Len(t, cons.Carts[0], 3)
	assert.Equal(t, Action{Type: ActionRemove, ProductID: "id1", Product: coffee, Quantity: 1}, cons.Carts[0][2])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.json")
	require.Error(t, err)
}

func TestParse_DefaultNames(t *testing.T) {
	doc := `{
		"marketplace": {"queue_size_per_producer": 1},
		"products": {"t": {"product_type": "Tea", "name": "Green", "price": 3, "type": "Green"}},
		"producers": [{"republish_wait_time": 0, "products": [["t", 1, 0]]}],
		"consumers": [{"retry_wait_time": 0, "carts": [[{"type": "add", "product": "t", "quantity": 1}]]}]
	}`

	sc, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "prod1", sc.Producers[0].Name)
	assert.Equal(t, "cons1", sc.Consumers[0].Name)
}

func TestParse_Invalid(t *testing.T) {
	const products = `"products": {"t": {"product_type": "Tea", "name": "Green", "price": 3, "type": "Green"}}`

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "zero queue size",
			doc:     `{"marketplace": {"queue_size_per_producer": 0}}`,
			wantErr: "queue_size_per_producer",
		},
		{
			name:    "unknown product type",
			doc:     `{"marketplace": {"queue_size_per_producer": 1}, "products": {"x": {"product_type": "Juice"}}}`,
			wantErr: "unknown product_type",
		},
		{
			name:    "producer references unknown product",
			doc:     `{"marketplace": {"queue_size_per_producer": 1}, ` + products + `, "producers": [{"name": "p", "products": [["nope", 1, 0]]}]}`,
			wantErr: "unknown product \"nope\"",
		},
		{
			name:    "malformed catalog tuple",
			doc:     `{"marketplace": {"queue_size_per_producer": 1}, ` + products + `, "producers": [{"name": "p", "products": [["t", 1]]}]}`,
			wantErr: "3 elements",
		},
		{
			name:    "negative wait",
			doc:     `{"marketplace": {"queue_size_per_producer": 1}, ` + products + `, "producers": [{"name": "p", "republish_wait_time": -1}]}`,
			wantErr: "negative wait time",
		},
		{
			name:    "duplicate producer",
			doc:     `{"marketplace": {"queue_size_per_producer": 1}, ` + products + `, "producers": [{"name": "p"}, {"name": "p"}]}`,
			wantErr: "duplicate producer",
		},
		{
			name:    "unknown action",
			doc:     `{"marketplace": {"queue_size_per_producer": 1}, ` + products + `, "consumers": [{"name": "c", "carts": [[{"type": "swap", "product": "t", "quantity": 1}]]}]}`,
			wantErr: "unknown action type",
		},
		{
			name:    "zero quantity",
			doc:     `{"marketplace": {"queue_size_per_producer": 1}, ` + products + `, "consumers": [{"name": "c", "carts": [[{"type": "add", "product": "t", "quantity": 0}]]}]}`,
			wantErr: "invalid quantity",
		},
		{
			name:    "duplicate consumer",
			doc:     `{"marketplace": {"queue_size_per_producer": 1}, ` + products + `, "consumers": [{"name": "c"}, {"name": "c"}]}`,
			wantErr: "duplicate consumer",
		},
		{
			name:    "unknown field",
			doc:     `{"marketplace": {"queue_size_per_producer": 1}, "extra": true}`,
			wantErr: "unknown field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
