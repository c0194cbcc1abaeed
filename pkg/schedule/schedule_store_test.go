package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/ledgercal/ledgercal/internal/rest"
	"github.com/ledgercal/ledgercal/internal/test_utils"
	"github.com/ledgercal/ledgercal/pkg/item"
	"github.com/ledgercal/ledgercal/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRestStore(t *testing.T) (*RestStore, *test_utils.FakeAPI) {
	api := test_utils.StartFakeAPI(t)
	client := rest.NewClient(api.URL(), 5*time.Second)
	return NewRestStore(client), api
}

func TestRestStore_CreateAndListMonth(t *testing.T) {
	store, api := setupRestStore(t)
	ctx := context.Background()

	rent := api.SeedItem(test_utils.ItemRecord{Name: "Rent", Amount: 1500, Type: "expense", DisplayOrder: 1})

	created, err := store.Create(ctx, Occurrence{BudgetItemID: rent.ID, Date: "2024-03-03"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = store.Create(ctx, Occurrence{BudgetItemID: rent.ID, Date: "2024-04-03"})
	require.NoError(t, err)

	march, err := store.ListMonth(ctx, 2024, time.March)
	require.NoError(t, err)
	require.Len(t, march, 1)
	assert.Equal(t, "2024-03-03", march[0].Date)

	// The backend embeds the resolved item snapshot.
	require.NotNil(t, march[0].Item)
	assert.Equal(t, "Rent", march[0].Item.Name)
	assert.EqualValues(t, 150000, march[0].Item.Amount)
	assert.Equal(t, item.TypeExpense, march[0].Item.Type)
}

func TestRestStore_OverridesSurviveRoundTrip(t *testing.T) {
	store, api := setupRestStore(t)
	ctx := context.Background()

	rent := api.SeedItem(test_utils.ItemRecord{Name: "Rent", Amount: 1500, Type: "expense"})

	amount := money.Money(123456)
	name := "March rent, prorated"
	created, err := store.Create(ctx, Occurrence{
		BudgetItemID: rent.ID,
		Date:         "2024-03-01",
		Amount:       &amount,
		Name:         &name,
	})
	require.NoError(t, err)
	require.NotNil(t, created.Amount)
	assert.EqualValues(t, 123456, *created.Amount)
	require.NotNil(t, created.Name)
	assert.Equal(t, name, *created.Name)
}

func TestRestStore_Update(t *testing.T) {
	store, api := setupRestStore(t)
	ctx := context.Background()

	rent := api.SeedItem(test_utils.ItemRecord{Name: "Rent", Amount: 1500, Type: "expense"})
	created, err := store.Create(ctx, Occurrence{BudgetItemID: rent.ID, Date: "2024-03-03"})
	require.NoError(t, err)

	override := money.Money(140000)
	created.Amount = &override
	require.NoError(t, store.Update(ctx, created))

	march, err := store.ListMonth(ctx, 2024, time.March)
	require.NoError(t, err)
	require.Len(t, march, 1)
	require.NotNil(t, march[0].Amount)
	assert.EqualValues(t, 140000, *march[0].Amount)
}

func TestRestStore_Delete(t *testing.T) {
	store, api := setupRestStore(t)
	ctx := context.Background()

	rent := api.SeedItem(test_utils.ItemRecord{Name: "Rent", Amount: 1500, Type: "expense"})
	created, err := store.Create(ctx, Occurrence{BudgetItemID: rent.ID, Date: "2024-03-03"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, created.ID))

	march, err := store.ListMonth(ctx, 2024, time.March)
	require.NoError(t, err)
	assert.Empty(t, march)

	err = store.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, rest.ErrNotFound)
}

func TestRestStore_DanglingReferenceListsWithoutItem(t *testing.T) {
	store, _ := setupRestStore(t)
	ctx := context.Background()

	// Item 999 does not exist on the backend; the occurrence still comes
	// back, just without an embedded snapshot.
	_, err := store.Create(ctx, Occurrence{BudgetItemID: 999, Date: "2024-03-08"})
	require.NoError(t, err)

	march, err := store.ListMonth(ctx, 2024, time.March)
	require.NoError(t, err)
	require.Len(t, march, 1)
	assert.Nil(t, march[0].Item)
}
