package bag

import (
	"encoding/json"
	"fmt"
)

// persistedBag is the stored blob shape: lines plus the sample selection. The
// added-product notification is a transient signal and is never persisted.
type persistedBag struct {
	Items          []LineItem `json:"items"`
	SelectedSample *string    `json:"selectedSample"`
}

// Encode serializes the bag for storage.
func Encode(b Bag) ([]byte, error) {
	blob := persistedBag{
		Items:          b.Items,
		SelectedSample: b.SelectedSample,
	}
	if blob.Items == nil {
		blob.Items = []LineItem{}
	}
	data, err := json.Marshal(blob)
	if err != nil {
		return nil, fmt.Errorf("encode bag: %w", err)
	}
	return data, nil
}

// Decode deserializes a stored blob. A corrupt blob returns an empty bag and
// the decode error so callers can log it without surfacing it to the shopper.
// A quantity outside [1, MaxLineQuantity] is clamped rather than treated as
// corruption, so one bad line never throws away the rest of the bag.
func Decode(data []byte) (Bag, error) {
	if len(data) == 0 {
		return Bag{}, nil
	}
	var blob persistedBag
	if err := json.Unmarshal(data, &blob); err != nil {
		return Bag{}, fmt.Errorf("decode bag: %w", err)
	}
	bag := Bag{
		Items:          blob.Items,
		SelectedSample: blob.SelectedSample,
	}
	for i := range bag.Items {
		bag.Items[i].Quantity = clampQuantity(bag.Items[i].Quantity)
	}
	return bag, nil
}
