package billing_test

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BillSync-api/internal/application/billing"
	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
)

type fakePDF struct{ business string }

func (f *fakePDF) GenerateBillPDF(ctx context.Context, bill *entity.Bill, admin *entity.Admin) ([]byte, error) {
	f.business = admin.BusinessName
	return []byte("%PDF-" + bill.Number), nil
}

type fakeQR struct{ content string }

func (f *fakeQR) PNG(content string, size int) ([]byte, error) {
	f.content = content
	return []byte("png"), nil
}

func TestUPIPayload(t *testing.T) {
	link := billing.UPIPayload("chai@okicici", "Chai Point", decimal.RequireFromString("94.075"), "BILL-20261018-000001")
	require.True(t, strings.HasPrefix(link, "upi://pay?"))

	q, err := url.ParseQuery(strings.TrimPrefix(link, "upi://pay?"))
	require.NoError(t, err)
	assert.Equal(t, "chai@okicici", q.Get("pa"))
	assert.Equal(t, "Chai Point", q.Get("pn"))
	assert.Equal(t, "94.08", q.Get("am"))
	assert.Equal(t, "INR", q.Get("cu"))
	assert.Equal(t, "BILL-20261018-000001", q.Get("tn"))
}

func TestDocuments(t *testing.T) {
	st := seed(t)
	bills := billing.NewBillUseCase(st.Bills(), st.Products())
	pdf, qr := &fakePDF{}, &fakeQR{}
	docs := billing.NewDocumentUseCase(st.Bills(), st.Admins(), pdf, qr)
	ctx := context.Background()

	bill, err := bills.Create(ctx, cashierA, order(item("p-chai", "1")))
	require.NoError(t, err)

	body, name, err := docs.DownloadBillPDF(ctx, cashierA, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, bill.Number+".pdf", name)
	assert.Equal(t, "%PDF-"+bill.Number, string(body))
	assert.Equal(t, "Chai Point", pdf.business)

	_, _, err = docs.DownloadBillPDF(ctx, cashierB, bill.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = docs.PaymentQR(ctx, cashierA, bill.ID)
	require.NoError(t, err)
	assert.Contains(t, qr.content, "pa=chai%40okicici")
	assert.Contains(t, qr.content, "am=21.00")

	_, err = bills.Pay(ctx, cashierA, bill.ID, entity.PaymentModeUPI)
	require.NoError(t, err)
	_, err = docs.PaymentQR(ctx, cashierA, bill.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPaymentQR_SinUPI(t *testing.T) {
	st := seed(t)
	bills := billing.NewBillUseCase(st.Bills(), st.Products())
	docs := billing.NewDocumentUseCase(st.Bills(), st.Admins(), &fakePDF{}, &fakeQR{})
	ctx := context.Background()

	bill, err := bills.Create(ctx, adminB, order(item("p-dosa", "1")))
	require.NoError(t, err)
	_, err = docs.PaymentQR(ctx, adminB, bill.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
