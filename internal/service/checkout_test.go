package service

import (
	"context"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realahmed45/future-bali-frontend/internal/domain"
	"github.com/realahmed45/future-bali-frontend/internal/nav"
	"github.com/realahmed45/future-bali-frontend/internal/notify"
	"github.com/realahmed45/future-bali-frontend/internal/storage"
	"github.com/realahmed45/future-bali-frontend/pkg/errors"
)

func selectedDraft(rooms ...string) *domain.OrderDraft {
	pkg := domain.Package1()
	d := domain.NewDraft(pkg.Base)
	for _, room := range rooms {
		offer, _ := pkg.FindOffer(room)
		d.ToggleAddOn(offer)
	}
	return &d
}

func TestPackageView_StartsNewDraft(t *testing.T) {
	h := newHarness(t)

	view := h.checkout.PackageView(nil)
	assert.Equal(t, domain.Package1Slug, view.Package.Slug)
	assert.NotEmpty(t, view.State.ID)
	assert.Empty(t, view.State.SelectedAddOns)
	assert.Equal(t, "$25,000", view.Total)
}

func TestToggleAddOn(t *testing.T) {
	h := newHarness(t)

	view, err := h.checkout.ToggleAddOn(nil, "Bedroom")
	require.NoError(t, err)
	assert.Len(t, view.State.SelectedAddOns, 1)
	assert.Equal(t, "$27,000", view.Total)

	view, err = h.checkout.ToggleAddOn(&view.State, "Bedroom")
	require.NoError(t, err)
	assert.Empty(t, view.State.SelectedAddOns)

	_, err = h.checkout.ToggleAddOn(nil, "Pool")
	var verr *errors.ErrValidation
	require.ErrorAs(t, err, &verr)
}

func TestProceedFromPackage_RequiresLogin(t *testing.T) {
	h := newHarness(t)

	_, err := h.checkout.ProceedFromPackage(context.Background(), selectedDraft("Garden"))
	var rerr *errors.ErrReauthRequired
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, nav.CartPath, rerr.Return.Path)
	require.NotNil(t, rerr.Return.State)
	assert.Len(t, rerr.Return.State.SelectedAddOns, 1)
	assert.Empty(t, h.api.calls("/api/cart/save"))
}

func TestProceedFromPackage_SavesCart(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.reply("/api/cart/save", http.StatusOK, ok(map[string]interface{}{"cart": map[string]string{"_id": "cart-9"}}))

	res, err := h.checkout.ProceedFromPackage(context.Background(), selectedDraft("Bedroom", "Kitchen"))
	require.NoError(t, err)
	assert.Equal(t, nav.CartPath, res.Redirect)
	assert.Equal(t, "cart-9", res.State.CartID)

	saved := h.api.calls("/api/cart/save")
	require.Len(t, saved, 1)
	assert.Equal(t, "Bearer tok-123", saved[0].Auth)
	assert.EqualValues(t, 29000, saved[0].Body["totalAmount"])
	_, hasEmail := saved[0].Body["email"]
	assert.False(t, hasEmail)

	cp, err := h.repos.Draft.GetByID(context.Background(), res.State.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepPackage, cp.Step)
	assert.Equal(t, "cart-9", cp.CartID)
}

func TestProceedFromPackage_FallsBackToLocalSelection(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.reply("/api/cart/save", http.StatusInternalServerError, map[string]interface{}{"message": "db down"})

	res, err := h.checkout.ProceedFromPackage(context.Background(), selectedDraft("Storage"))
	require.NoError(t, err)
	assert.Equal(t, nav.CartPath, res.Redirect)
	assert.Empty(t, res.State.CartID)

	var stored domain.OrderDraft
	found, err := h.store.GetJSON(storage.KeyPackageSelection, &stored)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, stored.SelectedAddOns, 1)

	view := h.checkout.CartView(context.Background(), nil)
	assert.Equal(t, CartSourceFallback, view.Source)
	assert.Equal(t, "Storage", view.State.SelectedAddOns[0].Room)
}

func TestCartView_LoadOrder(t *testing.T) {
	h := newHarness(t)

	view := h.checkout.CartView(context.Background(), nil)
	assert.Equal(t, CartSourceDefault, view.Source)
	assert.Equal(t, "$0", view.AddOnTotal)
	assert.Equal(t, "$25,000", view.Total)
	assert.False(t, view.Authenticated)

	view = h.checkout.CartView(context.Background(), selectedDraft("Bathroom"))
	assert.Equal(t, CartSourceNavigation, view.Source)
	assert.Equal(t, "$2,000", view.AddOnTotal)
}

func TestCartView_ChecksSession(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.reply("/api/auth/verify-token", http.StatusOK, ok(map[string]interface{}{"user": map[string]string{"email": "ana@example.com"}}))

	view := h.checkout.CartView(context.Background(), selectedDraft())
	assert.True(t, view.Authenticated)
	assert.Equal(t, "ana@example.com", view.Email)
}

func TestCartView_RejectedTokenLogsOut(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.reply("/api/auth/verify-token", http.StatusUnauthorized, map[string]interface{}{"success": false, "message": "Invalid token"})

	view := h.checkout.CartView(context.Background(), selectedDraft())
	assert.False(t, view.Authenticated)
	assert.Empty(t, view.Email)

	_, ok := h.session.Token()
	assert.False(t, ok)
	_, found, err := h.store.GetString(storage.KeyAuthToken)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRemoveAddOn(t *testing.T) {
	h := newHarness(t)

	view, err := h.checkout.RemoveAddOn(selectedDraft("Bedroom", "Garden"), 0)
	require.NoError(t, err)
	require.Len(t, view.State.SelectedAddOns, 1)
	assert.Equal(t, "Garden", view.State.SelectedAddOns[0].Room)

	var stored domain.OrderDraft
	found, err := h.store.GetJSON(storage.KeyPackageSelection, &stored)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, stored.SelectedAddOns, 1)

	_, err = h.checkout.RemoveAddOn(selectedDraft(), 3)
	var verr *errors.ErrValidation
	require.ErrorAs(t, err, &verr)
}

func TestCheckout_SavesCartWithVerifiedEmail(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.reply("/api/auth/verify-token", http.StatusOK, ok(map[string]interface{}{"user": map[string]string{"email": "ana@example.com"}}))
	h.api.reply("/api/cart/save", http.StatusOK, ok(map[string]interface{}{"cart": map[string]string{"_id": "cart-2"}}))

	res, err := h.checkout.Checkout(context.Background(), selectedDraft("Kitchen"))
	require.NoError(t, err)
	assert.Equal(t, nav.ReviewOrderPath, res.Redirect)
	assert.Equal(t, "cart-2", res.State.CartID)

	saved := h.api.calls("/api/cart/save")
	require.Len(t, saved, 1)
	assert.Equal(t, "ana@example.com", saved[0].Body["email"])
}

func TestCheckout_RejectedTokenReauthenticatesWithDraft(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.reply("/api/auth/verify-token", http.StatusUnauthorized, map[string]interface{}{"message": "Invalid token"})

	_, err := h.checkout.Checkout(context.Background(), selectedDraft("Garden"))
	var rerr *errors.ErrReauthRequired
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, nav.CartPath, rerr.Return.Path)
	assert.Len(t, rerr.Return.State.SelectedAddOns, 1)

	_, held := h.session.Token()
	assert.False(t, held)
	assert.Empty(t, h.api.calls("/api/cart/save"))
}

func TestCheckout_FailureUsesCartMessage(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.reply("/api/auth/verify-token", http.StatusOK, ok(map[string]interface{}{"user": map[string]string{"email": "ana@example.com"}}))
	h.api.reply("/api/cart/save", http.StatusInternalServerError, map[string]interface{}{"message": "E11000 duplicate key"})

	_, err := h.checkout.Checkout(context.Background(), selectedDraft())
	var uerr *errors.ErrUpstream
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, msgCartSaveFailed, uerr.Message)
}

func TestCreateOrder(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	_, err := h.checkout.CreateOrder(context.Background(), selectedDraft())
	var perr *errors.ErrPrecondition
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, msgCartIDMissing, perr.Message)

	h.api.reply("/api/orders/create", http.StatusOK, ok(map[string]interface{}{"order": map[string]string{"_id": "ord-1"}}))
	draft := selectedDraft("Bedroom")
	draft.CartID = "cart-1"
	res, err := h.checkout.CreateOrder(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, nav.UserInfoPath, res.Redirect)
	assert.Equal(t, "ord-1", res.State.OrderID)
	assert.Equal(t, "cart-1", h.api.calls("/api/orders/create")[0].Body["cartId"])

	banners := h.notifier.Active()
	require.Len(t, banners, 1)
	assert.Equal(t, notify.LevelSuccess, banners[0].Level)
}

func validPerson() domain.Person {
	return domain.Person{
		Name:       "Ana Putri",
		Phone:      "+62 812 0000",
		DOB:        "1990-01-01",
		Address:    "Jl. Raya 1",
		Country:    "Indonesia",
		Email:      "ana@example.com",
		PassportID: "X1234567",
	}
}

func pngDoc(name string) *Document {
	return &Document{Filename: name, ContentType: "image/png", Data: []byte("\x89PNG")}
}

func TestSaveUserInfo_Validation(t *testing.T) {
	h := newHarness(t)
	draft := selectedDraft()
	draft.OrderID = "ord-1"

	p := validPerson()
	p.Name = "  "
	p.Email = "nope"
	_, err := h.checkout.SaveUserInfo(context.Background(), draft, []PersonInput{{Person: p, Front: pngDoc("f.png")}})
	var verr *errors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Name is required", verr.Fields["0-name"])
	assert.Equal(t, "Email is invalid", verr.Fields["0-email"])
	assert.Equal(t, msgBackImageRequired, verr.Fields["0-backImage"])
	assert.NotContains(t, verr.Fields, "0-frontImage")

	big := &Document{Filename: "scan.pdf", ContentType: "application/pdf", Data: make([]byte, MaxDocumentSize+1)}
	gif := &Document{Filename: "x.gif", ContentType: "image/gif", Data: []byte("GIF")}
	_, err = h.checkout.SaveUserInfo(context.Background(), draft, []PersonInput{{Person: validPerson(), Front: big, Back: gif}})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, msgDocumentTooLarge, verr.Fields["0-frontImage"])
	assert.Equal(t, msgDocumentType, verr.Fields["0-backImage"])
}

func TestSaveUserInfo_ToleratesFailedUpload(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.on("/api/upload", func(w http.ResponseWriter, r *http.Request) {
		_, hdr, err := r.FormFile("file")
		if err != nil || hdr.Filename == "back.png" {
			respond(w, http.StatusInternalServerError, map[string]string{"message": "disk full"})
			return
		}
		respond(w, http.StatusOK, map[string]string{"filePath": "/uploads/" + hdr.Filename})
	})
	h.api.reply("/api/orders/save-user-info", http.StatusOK, ok(nil))

	draft := selectedDraft()
	draft.OrderID = "ord-1"
	res, err := h.checkout.SaveUserInfo(context.Background(), draft, []PersonInput{
		{Person: validPerson(), Front: pngDoc("front.png"), Back: pngDoc("back.png")},
	})
	require.NoError(t, err)
	assert.Equal(t, nav.InheritancePath, res.Redirect)
	require.Len(t, res.State.UserInfo, 1)
	require.NotNil(t, res.State.UserInfo[0].FrontImage)
	assert.Equal(t, "/uploads/front.png", *res.State.UserInfo[0].FrontImage)
	assert.Nil(t, res.State.UserInfo[0].BackImage)
	require.NotNil(t, res.State.PrimarySigner)
	assert.Equal(t, "Ana Putri", res.State.PrimarySigner.Name)

	saved := h.api.calls("/api/orders/save-user-info")
	require.Len(t, saved, 1)
	assert.Equal(t, "ord-1", saved[0].Body["orderId"])
}

func TestSaveUserInfo_KeepsExistingImages(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.reply("/api/orders/save-user-info", http.StatusOK, ok(nil))

	p := validPerson()
	p.FrontImage = strPtr("/uploads/a.png")
	p.BackImage = strPtr("/uploads/b.png")
	draft := selectedDraft()
	draft.OrderID = "ord-1"

	res, err := h.checkout.SaveUserInfo(context.Background(), draft, []PersonInput{{Person: p}})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/a.png", *res.State.UserInfo[0].FrontImage)
	assert.Empty(t, h.api.calls("/api/upload"))
}

func contactPair() []domain.Contact {
	return []domain.Contact{
		{ID: "c1", Name: "Budi", PhoneNumber: "0812", Percentage: "50"},
		{ID: "c2", Name: "Sari", PhoneNumber: "0813", Percentage: "50"},
	}
}

func TestSaveInheritance_SkipSendsNothing(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	draft := selectedDraft()
	draft.OrderID = "ord-1"

	res, err := h.checkout.SaveInheritance(context.Background(), draft, []domain.Contact{{ID: "c1"}}, true)
	require.NoError(t, err)
	assert.Equal(t, nav.EmergencyPath, res.Redirect)
	assert.NotNil(t, res.State.InheritanceContacts)
	assert.Empty(t, res.State.InheritanceContacts)
	assert.Empty(t, h.api.calls("/api/orders/save-inheritance"))
}

func TestSaveInheritance(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.reply("/api/orders/save-inheritance", http.StatusOK, ok(nil))
	draft := selectedDraft()
	draft.OrderID = "ord-1"

	_, err := h.checkout.SaveInheritance(context.Background(), draft, contactPair()[:1], false)
	var verr *errors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, msgTooFewContacts, verr.Fields["contacts"])

	missing := contactPair()
	missing[1].Name = ""
	_, err = h.checkout.SaveInheritance(context.Background(), draft, missing, false)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Name is required", verr.Fields["c2-name"])

	res, err := h.checkout.SaveInheritance(context.Background(), draft, contactPair(), false)
	require.NoError(t, err)
	assert.Len(t, res.State.InheritanceContacts, 2)
	sent := h.api.calls("/api/orders/save-inheritance")
	require.Len(t, sent, 1)
	contacts := sent[0].Body["contacts"].([]interface{})
	assert.NotContains(t, contacts[0].(map[string]interface{}), "id")
}

func TestSaveEmergency_UploadsIDImages(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.on("/api/upload", func(w http.ResponseWriter, r *http.Request) {
		_, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		respond(w, http.StatusOK, map[string]string{"filePath": "/uploads/" + hdr.Filename})
	})
	h.api.reply("/api/orders/save-emergency", http.StatusOK, ok(nil))
	draft := selectedDraft()
	draft.OrderID = "ord-1"

	pair := contactPair()
	res, err := h.checkout.SaveEmergency(context.Background(), draft, []ContactInput{
		{Contact: pair[0], IDImage: pngDoc("id1.png")},
		{Contact: pair[1]},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, nav.PlaceOrderPath, res.Redirect)
	require.Len(t, res.State.EmergencyContacts, 2)
	assert.Equal(t, "/uploads/id1.png", *res.State.EmergencyContacts[0].IDImage)
	assert.Nil(t, res.State.EmergencyContacts[1].IDImage)
}

func TestSaveEmergency_SkipSendsNothing(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	draft := selectedDraft()
	draft.OrderID = "ord-1"

	res, err := h.checkout.SaveEmergency(context.Background(), draft, []ContactInput{
		{Contact: domain.Contact{ID: "c1"}, IDImage: pngDoc("id1.png")},
	}, true)
	require.NoError(t, err)
	assert.Equal(t, nav.PlaceOrderPath, res.Redirect)
	assert.NotNil(t, res.State.EmergencyContacts)
	assert.Empty(t, res.State.EmergencyContacts)
	assert.Empty(t, h.api.calls("/api/orders/save-emergency"))
	assert.Empty(t, h.api.calls("/api/upload"))
}

func TestContactsForm_FloorsAtTwo(t *testing.T) {
	view := ContactsForm(nil, InheritanceContacts)
	require.Len(t, view.Contacts, domain.MinContacts)
	assert.NotEqual(t, view.Contacts[0].ID, view.Contacts[1].ID)

	draft := selectedDraft()
	draft.EmergencyContacts = append(contactPair(), domain.Contact{ID: "c3"})
	view = ContactsForm(draft, EmergencyContacts)
	assert.Len(t, view.Contacts, 3)
}

func validBilling() domain.BillingDetails {
	return domain.BillingDetails{
		FirstName: "Ana",
		LastName:  "Putri",
		Phone:     "0812",
		Email:     "ana@example.com",
		Country:   "Indonesia",
		Address:   "Jl. Raya 1",
	}
}

func TestPlaceOrder(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.reply("/api/orders/finalize", http.StatusOK, ok(nil))
	draft := selectedDraft()

	bad := validBilling()
	bad.Email = "ana@"
	_, err := h.checkout.PlaceOrder(context.Background(), draft, bad)
	var verr *errors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, msgRequiredCorrect, verr.Message)
	assert.Contains(t, verr.Fields, "email")

	_, err = h.checkout.PlaceOrder(context.Background(), draft, validBilling())
	var perr *errors.ErrPrecondition
	require.ErrorAs(t, err, &perr)

	draft.OrderID = "ord-1"
	res, err := h.checkout.PlaceOrder(context.Background(), draft, validBilling())
	require.NoError(t, err)
	assert.Equal(t, nav.PaymentPath, res.Redirect)
	require.NotNil(t, res.State.BillingDetails)
	assert.Equal(t, "Ana", res.State.BillingDetails.FirstName)
}

func TestPlaceOrder_ServerMessage(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.reply("/api/orders/finalize", http.StatusBadRequest, map[string]interface{}{"message": "Order already finalized"})
	draft := selectedDraft()
	draft.OrderID = "ord-1"

	_, err := h.checkout.PlaceOrder(context.Background(), draft, validBilling())
	var uerr *errors.ErrUpstream
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "Order already finalized", uerr.Message)

	events, err := h.repos.DraftEvent.GetByDraftID(context.Background(), draft.ID)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, "step_failed", events[len(events)-1].EventType)
}

func orderResponse() map[string]interface{} {
	return ok(map[string]interface{}{"order": map[string]interface{}{
		"_id":         "ord-1",
		"totalAmount": 27000,
		"basePackage": map[string]interface{}{"title": "Furnished 1 bedroom house", "price": 25000},
		"userInfo":    []map[string]string{{"name": "Ana Putri", "email": "ana@example.com"}},
		"userEmail":   "login@example.com",
	}})
}

func TestPaymentView(t *testing.T) {
	h := newHarness(t)

	_, err := h.checkout.PaymentView(context.Background(), selectedDraft())
	var perr *errors.ErrPrecondition
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, msgPaymentOrderIDMissing, perr.Message)

	draft := selectedDraft("Bedroom", "Garden")
	draft.OrderID = "ord-1"
	view, err := h.checkout.PaymentView(context.Background(), draft)
	require.NoError(t, err)
	assert.Nil(t, view.Order)
	assert.Equal(t, "$29,000", view.FullAmountFormatted)
	assert.Equal(t, "$2,000", view.DepositAmountFormatted)

	h.api.reply("/api/orders/ord-1", http.StatusOK, orderResponse())
	view, err = h.checkout.PaymentView(context.Background(), draft)
	require.NoError(t, err)
	require.NotNil(t, view.Order)
	assert.Equal(t, "$27,000", view.FullAmountFormatted)
}

func TestPay_FullPaymentSendsConfirmation(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.reply("/api/orders/ord-1", http.StatusOK, orderResponse())
	h.api.reply("/api/contracts/generate", http.StatusOK, ok(nil))
	draft := selectedDraft()
	draft.OrderID = "ord-1"

	receipt, err := h.checkout.Pay(context.Background(), draft, domain.PaymentTypeFull)
	require.NoError(t, err)
	assert.True(t, receipt.EmailSent)
	assert.EqualValues(t, 27000, receipt.Payment.AmountPaid)
	assert.Equal(t, "PayPal", receipt.Payment.PaymentMethod)
	assert.Equal(t, "2026-03-01T12:00:00Z", receipt.Payment.PaymentDate)
	assert.Equal(t, h.api.srv.URL+"/api/contracts/download/ord-1", receipt.DownloadURL)

	contract := h.api.calls("/api/contracts/generate")
	require.Len(t, contract, 1)
	details := contract[0].Body["paymentDetails"].(map[string]interface{})
	assert.Equal(t, "full", details["paymentType"])
	assert.Equal(t, receipt.Payment.TransactionID, details["transactionId"])

	mails := h.mail.calls("/api/v1.0/email/send")
	require.Len(t, mails, 1)
	params := mails[0].Body["template_params"].(map[string]interface{})
	assert.Equal(t, "ana@example.com", params["to_email"])
	assert.Equal(t, "Ana Putri", params["to_name"])
	assert.Equal(t, "27000", params["total_amount"])
	assert.Equal(t, "Furnished 1 bedroom house", params["package_title"])
	assert.Equal(t, receipt.DownloadURL, params["download_link"])
	assert.Equal(t, "My Future Life Bali", params["from_name"])

	cp, err := h.repos.Draft.GetByID(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepPayment, cp.Step)
}

func TestPay_DepositWithEmailFailureStillSucceeds(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.reply("/api/orders/ord-1", http.StatusOK, orderResponse())
	h.api.reply("/api/contracts/generate", http.StatusOK, ok(nil))
	h.mail.reply("/api/v1.0/email/send", http.StatusBadRequest, "The public key is invalid")
	draft := selectedDraft()
	draft.OrderID = "ord-1"

	receipt, err := h.checkout.Pay(context.Background(), draft, domain.PaymentTypeDeposit)
	require.NoError(t, err)
	assert.False(t, receipt.EmailSent)
	assert.EqualValues(t, domain.DepositAmount, receipt.Payment.AmountPaid)

	banners := h.notifier.Active()
	require.Len(t, banners, 1)
	assert.Equal(t, notify.LevelWarning, banners[0].Level)
	assert.Equal(t, msgEmailFailed, banners[0].Message)
}

func TestPay_Failures(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	draft := selectedDraft()
	draft.OrderID = "ord-1"

	_, err := h.checkout.Pay(context.Background(), draft, domain.PaymentType("card"))
	var verr *errors.ErrValidation
	require.ErrorAs(t, err, &verr)

	_, err = h.checkout.Pay(context.Background(), draft, domain.PaymentTypeFull)
	var uerr *errors.ErrUpstream
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, msgOrderLoadFailed, uerr.Message)

	h.api.reply("/api/orders/ord-1", http.StatusOK, orderResponse())
	h.api.reply("/api/contracts/generate", http.StatusInternalServerError, map[string]string{"message": "pdf failed"})
	_, err = h.checkout.Pay(context.Background(), draft, domain.PaymentTypeFull)
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, msgPaymentFailed, uerr.Message)
	assert.Empty(t, h.mail.calls("/api/v1.0/email/send"))
}

func TestClosePayment(t *testing.T) {
	h := newHarness(t)
	receipt := PaymentReceipt{OrderID: "ord-1", Payment: domain.PaymentDetails{TransactionID: "TXN1"}}

	res := h.checkout.ClosePayment(receipt)
	assert.Equal(t, nav.HomePath, res.Redirect)
	assert.Equal(t, "ord-1", res.State.OrderID)
	assert.Equal(t, "TXN1", res.State.PaymentInfo.TransactionID)
}

func TestResume(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.reply("/api/cart/save", http.StatusOK, ok(map[string]interface{}{"cart": map[string]string{"_id": "cart-9"}}))
	res, err := h.checkout.ProceedFromPackage(context.Background(), selectedDraft("Garden"))
	require.NoError(t, err)

	cp, err := h.checkout.Resume(context.Background(), res.State.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "cart-9", cp.Draft.CartID)

	_, err = h.checkout.Resume(context.Background(), "not-a-uuid")
	var nerr *errors.ErrNotFound
	require.ErrorAs(t, err, &nerr)
}

func TestTransactionID(t *testing.T) {
	now := time.UnixMilli(1767225600123)
	id := transactionID(now)
	assert.Regexp(t, regexp.MustCompile(`^TXN1767225600123[0-9A-Z]{4}$`), id)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$25,000", formatAmount(25000))
	assert.Equal(t, "$2,000", formatAmount(2000))
	assert.Equal(t, "$999", formatAmount(999.4))
}
