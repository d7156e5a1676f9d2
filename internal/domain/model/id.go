package model

// Typed identifier wrappers. Every cross-entity reference in the store is a
// bare string; wrapping them keeps a payment's user id from being handed to
// a mandate lookup by accident. The zero value means "unset".

type UserID string

type PlanID string

type SubscriptionID string

type PaymentID string

// MandateID is the externally visible mandate identifier
// (mandate_<epochMillis>_<user-suffix>), not a row id.
type MandateID string

// GatewaySubscriptionID is issued by the payment gateway and is the lookup
// key for every webhook event.
type GatewaySubscriptionID string

func (id UserID) String() string                { return string(id) }
func (id PlanID) String() string                { return string(id) }
func (id SubscriptionID) String() string        { return string(id) }
func (id PaymentID) String() string             { return string(id) }
func (id MandateID) String() string             { return string(id) }
func (id GatewaySubscriptionID) String() string { return string(id) }

func (id UserID) Empty() bool                { return id == "" }
func (id PlanID) Empty() bool                { return id == "" }
func (id SubscriptionID) Empty() bool        { return id == "" }
func (id MandateID) Empty() bool             { return id == "" }
func (id GatewaySubscriptionID) Empty() bool { return id == "" }
