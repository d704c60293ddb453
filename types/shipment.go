package types

import "encoding/json"

// ShipmentRecord is the structured shipment schema extracted from a
// document. Pointer fields stay nil when the document does not state
// the value, which serializes as JSON null.
type ShipmentRecord struct {
	ShipmentID       *string  `json:"shipment_id"`
	Shipper          *string  `json:"shipper"`
	Consignee        *string  `json:"consignee"`
	PickupDatetime   *string  `json:"pickup_datetime"`
	DeliveryDatetime *string  `json:"delivery_datetime"`
	EquipmentType    *string  `json:"equipment_type"`
	Mode             *string  `json:"mode"`
	Rate             *float64 `json:"rate"`
	Currency         *string  `json:"currency"`
	Weight           *string  `json:"weight"`
	CarrierName      *string  `json:"carrier_name"`
}

// ExtractResult carries either a parsed shipment record or, when the
// model output could not be parsed as JSON, the raw response and an
// error marker. Exactly one branch is set.
type ExtractResult struct {
	Record      *ShipmentRecord
	RawResponse string
	Err         string
}

func (r ExtractResult) MarshalJSON() ([]byte, error) {
	if r.Record != nil {
		return json.Marshal(r.Record)
	}
	return json.Marshal(struct {
		RawResponse string `json:"raw_response"`
		Err         string `json:"error"`
	}{r.RawResponse, r.Err})
}
