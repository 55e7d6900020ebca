package domain

// DeliveryAddress is only sent for delivery orders.
type DeliveryAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

type Customer struct {
	FirstName       string           `json:"firstName"`
	LastName        string           `json:"lastName"`
	Email           string           `json:"email"`
	DeliveryAddress *DeliveryAddress `json:"deliveryAddress,omitempty"`
}
