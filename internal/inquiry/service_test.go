// AngelaMos | 2026
// service_test.go

package inquiry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andgroupco/andoffer/internal/core"
)

const lampID = "6f1c1f56-8a55-4b1e-9a50-0d3bba1b5d01"

func TestCreate(t *testing.T) {
	repo := newMemRepo()
	repo.products[lampID] = "Desk Lamp"
	svc := NewService(repo, nil)

	l, err := svc.Create(t.Context(), CreateInquiryRequest{
		Name:      " Mai ",
		Email:     ptr("mai@example.com"),
		Phone:     ptr(" "),
		Message:   "Is MOQ 50 possible?",
		ProductID: ptr(lampID),
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "Mai", l.Name)
	assert.Equal(t, StatusNew, l.Status)
	assert.Nil(t, l.Phone)
	assert.Nil(t, l.UserID)
	require.NotNil(t, l.ProductName)
	assert.Equal(t, "Desk Lamp", *l.ProductName)
}

func TestCreate_AttachesUser(t *testing.T) {
	svc := NewService(newMemRepo(), nil)

	l, err := svc.Create(t.Context(), CreateInquiryRequest{
		Name:    "Buyer",
		Message: "Hello",
	}, "user-1")
	require.NoError(t, err)
	require.NotNil(t, l.UserID)
	assert.Equal(t, "user-1", *l.UserID)
	assert.Nil(t, l.ProductID)
}

func TestCreate_UnknownProduct(t *testing.T) {
	svc := NewService(newMemRepo(), nil)

	_, err := svc.Create(t.Context(), CreateInquiryRequest{
		Name:      "A",
		Message:   "B",
		ProductID: ptr(lampID),
	}, "")
	assert.ErrorIs(t, err, ErrUnknownProduct)

	_, err = svc.Create(t.Context(), CreateInquiryRequest{
		Name:      "A",
		Message:   "B",
		ProductID: ptr("not-a-uuid"),
	}, "")
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestListAndLatest(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)

	var ids []string
	for i := range 7 {
		l, err := svc.Create(t.Context(), CreateInquiryRequest{
			Name:    fmt.Sprintf("n%d", i),
			Message: "m",
		}, "")
		require.NoError(t, err)
		ids = append(ids, l.ID)
	}

	_, err := svc.UpdateStatus(t.Context(), ids[0], StatusResolved)
	require.NoError(t, err)

	items, total, err := svc.List(t.Context(), ListParams{
		PageParams: core.PageParams{Page: 1, PageSize: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, items, 3)
	assert.Equal(t, "n6", items[0].Name)

	items, total, err = svc.List(t.Context(), ListParams{Status: StatusResolved})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, ids[0], items[0].ID)

	_, _, err = svc.List(t.Context(), ListParams{Status: "SPAM"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	latest, err := svc.Latest(t.Context())
	require.NoError(t, err)
	assert.Len(t, latest, DashboardLatest)
}

func TestUpdateStatus(t *testing.T) {
	svc := NewService(newMemRepo(), nil)

	l, err := svc.Create(t.Context(), CreateInquiryRequest{Name: "A", Message: "B"}, "")
	require.NoError(t, err)

	got, err := svc.UpdateStatus(t.Context(), l.ID, StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, got.Status)

	_, err = svc.UpdateStatus(t.Context(), l.ID, Status("OPEN"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(t.Context(), "missing", StatusClosed)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
