package domain

type BillingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// PaymentDetails holds the card data entered on the payment step. The card
// number keeps whatever separators the user typed; validation strips them.
type PaymentDetails struct {
	CardNumber     string         `json:"cardNumber"`
	ExpiryMonth    string         `json:"expiryMonth"`
	ExpiryYear     string         `json:"expiryYear"`
	CVV            string         `json:"cvv"`
	CardholderName string         `json:"cardholderName"`
	BillingAddress BillingAddress `json:"billingAddress"`
}
