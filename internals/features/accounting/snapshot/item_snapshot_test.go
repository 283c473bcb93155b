// file: internals/features/accounting/snapshot/item_snapshot_test.go
package snapshot

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"schoolms_backend/internals/features/accounting/money"
)

func TestDecode_VersionedEnvelope(t *testing.T) {
	in := ItemList{
		SchemaVersion: SchemaVersion,
		Items: []Item{
			{Category: "TUITION", Label: "Tuition Fee", Amount: decimal.NewFromInt(100), Frequency: money.FrequencyMonthly},
		},
	}
	raw, err := in.JSON()
	if err != nil {
		t.Fatalf("JSON() err: %v", err)
	}

	out, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() err: %v", err)
	}
	if out.SchemaVersion != SchemaVersion || len(out.Items) != 1 {
		t.Fatalf("Decode() = %+v, want 1 item at schema %d", out, SchemaVersion)
	}
	if !out.Items[0].Amount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("amount = %s, want 100", out.Items[0].Amount)
	}
}

func TestDecode_LegacyBareArray(t *testing.T) {
	raw := datatypes.JSON(`[{"category":"TUITION","label":"Tuition Fee","amount":"250","frequency":"MONTHLY","is_optional":false}]`)

	out, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() err: %v", err)
	}
	if out.SchemaVersion != SchemaVersion {
		t.Errorf("schema version = %d, want %d", out.SchemaVersion, SchemaVersion)
	}
	if len(out.Items) != 1 || !out.Items[0].Amount.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("Decode() = %+v, want one 250 item", out)
	}
}

func TestDecode_EnvelopeWithoutSchemaVersion(t *testing.T) {
	raw := datatypes.JSON(`{"items":[{"category":"TUITION","label":"Tuition Fee","amount":"250","frequency":"MONTHLY"}]}`)

	out, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() err: %v", err)
	}
	if out.SchemaVersion != SchemaVersion {
		t.Errorf("schema version defaulted to %d, want %d", out.SchemaVersion, SchemaVersion)
	}
	if len(out.Items) != 1 || !out.Items[0].Amount.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("Decode() = %+v, want one 250 item", out)
	}
}

func TestDecode_EmptyAndGarbage(t *testing.T) {
	if out, err := Decode(nil); err != nil || len(out.Items) != 0 {
		t.Errorf("Decode(nil) = %+v, %v; want empty list", out, err)
	}
	if _, err := Decode(datatypes.JSON(`{"schema_version":`)); err == nil {
		t.Error("Decode(garbage) expected error")
	}
}
