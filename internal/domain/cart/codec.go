package cart

import (
	"github.com/LCtech96/EmilyBoutique/internal/domain/model"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// storage envelope: {"state":{"items":[...]},"version":0}
type persistedCart struct {
	State   persistedState `json:"state"`
	Version int            `json:"version"`
}

type persistedState struct {
	Items []model.CartLineItem `json:"items"`
}

const envelopeVersion = 0

func Encode(items []model.CartLineItem) ([]byte, error) {
	if items == nil {
		items = []model.CartLineItem{}
	}
	return json.Marshal(persistedCart{
		State:   persistedState{Items: items},
		Version: envelopeVersion,
	})
}

// Decode restores the items, dropping lines with a non-positive quantity,
// filling in a missing id and merging lines that share an id (first
// snapshot wins, quantities summed).
func Decode(data []byte) ([]model.CartLineItem, error) {
	var pc persistedCart
	if err := json.Unmarshal(data, &pc); err != nil {
		return nil, err
	}

	items := make([]model.CartLineItem, 0, len(pc.State.Items))
	index := make(map[string]int, len(pc.State.Items))
	for _, it := range pc.State.Items {
		if it.Quantity <= 0 {
			continue
		}
		if it.ID == "" {
			it.ID = it.Identity()
		}
		if i, ok := index[it.ID]; ok {
			items[i].Quantity += it.Quantity
			continue
		}
		index[it.ID] = len(items)
		items = append(items, it)
	}
	return items, nil
}
