package store

import (
	"sort"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sahilm/fuzzy"
)

// ShopItem is one purchasable item within a guild's shop. The name is
// the unique key.
type ShopItem struct {
	Price    int64  `json:"price"`
	Emoji    string `json:"emoji,omitempty"`
	Category string `json:"category,omitempty"`
}

// NamedItem pairs an item with its key for listings.
type NamedItem struct {
	Name string
	ShopItem
}

type shopDoc map[string]map[string]ShopItem

func newShopDoc() shopDoc { return make(shopDoc) }

// ShopStore persists per-guild shop catalogs in shop.json.
type ShopStore struct {
	file *jsonFile
}

func NewShopStore(dir string) *ShopStore {
	return &ShopStore{file: newJSONFile(dir, "shop.json")}
}

func (s *ShopStore) AddItem(guild snowflake.ID, name string, item ShopItem) error {
	if item.Price <= 0 {
		return ErrInvalidAmount
	}
	return update(s.file, newShopDoc, func(doc shopDoc) (bool, error) {
		g, ok := doc[guild.String()]
		if !ok {
			g = make(map[string]ShopItem)
			doc[guild.String()] = g
		}
		if _, exists := g[name]; exists {
			return false, ErrItemExists
		}
		g[name] = item
		return true, nil
	})
}

func (s *ShopStore) RemoveItem(guild snowflake.ID, name string) error {
	return update(s.file, newShopDoc, func(doc shopDoc) (bool, error) {
		g, ok := doc[guild.String()]
		if !ok {
			return false, ErrItemNotFound
		}
		if _, exists := g[name]; !exists {
			return false, ErrItemNotFound
		}
		delete(g, name)
		return true, nil
	})
}

// List reports the catalog sorted by name.
func (s *ShopStore) List(guild snowflake.ID) ([]NamedItem, error) {
	var items []NamedItem
	err := view(s.file, newShopDoc, func(doc shopDoc) error {
		for name, item := range doc[guild.String()] {
			items = append(items, NamedItem{Name: name, ShopItem: item})
		}
		return nil
	})
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, err
}

// Find resolves a purchase query: exact name first, then the best
// fuzzy match over the catalog.
func (s *ShopStore) Find(guild snowflake.ID, query string) (NamedItem, error) {
	items, err := s.List(guild)
	if err != nil {
		return NamedItem{}, err
	}
	for _, item := range items {
		if item.Name == query {
			return item, nil
		}
	}

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return NamedItem{}, ErrItemNotFound
	}
	return items[matches[0].Index], nil
}
