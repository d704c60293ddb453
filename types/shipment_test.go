package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestExtractResultMarshalRecord(t *testing.T) {
	rate := 1850.0
	result := ExtractResult{
		Record: &ShipmentRecord{
			ShipmentID: strPtr("SH-1001"),
			Mode:       strPtr("FTL"),
			Rate:       &rate,
		},
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got, want := len(decoded), 11; got != want {
		t.Fatalf("expected %d fields, got %d: %s", want, got, data)
	}
	if decoded["shipment_id"] != "SH-1001" {
		t.Errorf("shipment_id = %v", decoded["shipment_id"])
	}
	if decoded["rate"] != 1850.0 {
		t.Errorf("rate = %v", decoded["rate"])
	}
	if val, ok := decoded["carrier_name"]; !ok || val != nil {
		t.Errorf("carrier_name = %v, want null", val)
	}
	if _, ok := decoded["raw_response"]; ok {
		t.Errorf("parsed result should not carry raw_response: %s", data)
	}
}

func TestExtractResultMarshalFallback(t *testing.T) {
	result := ExtractResult{
		RawResponse: "not json at all",
		Err:         "Failed to parse LLM JSON output",
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		RawResponse string `json:"raw_response"`
		Err         string `json:"error"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.RawResponse != "not json at all" {
		t.Errorf("raw_response = %q", decoded.RawResponse)
	}
	if decoded.Err != "Failed to parse LLM JSON output" {
		t.Errorf("error = %q", decoded.Err)
	}
	if strings.Contains(string(data), "shipment_id") {
		t.Errorf("fallback result should not carry record fields: %s", data)
	}
}

func TestShipmentRecordUnmarshalNulls(t *testing.T) {
	payload := `{"shipment_id":"S1","shipper":null,"consignee":"ACME","pickup_datetime":null,"delivery_datetime":null,"equipment_type":null,"mode":"FTL","rate":2500.5,"currency":"USD","weight":null,"carrier_name":null}`

	var record ShipmentRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if record.ShipmentID == nil || *record.ShipmentID != "S1" {
		t.Errorf("shipment_id = %v", record.ShipmentID)
	}
	if record.Shipper != nil {
		t.Errorf("shipper = %q, want nil", *record.Shipper)
	}
	if record.Consignee == nil || *record.Consignee != "ACME" {
		t.Errorf("consignee = %v", record.Consignee)
	}
	if record.Rate == nil || *record.Rate != 2500.5 {
		t.Errorf("rate = %v", record.Rate)
	}
}
