package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Category distinguishes the two kinds of sellable inventory.
type Category int

const (
	CategoryPhone     Category = 0
	CategoryAccessory Category = 1
)

func (c Category) String() string {
	names := [...]string{"phone", "accessory"}
	if int(c) < 0 || int(c) >= len(names) {
		return "accessory"
	}
	return names[c]
}

// ParseCategory accepts the singular and plural wire spellings.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "phone", "phones":
		return CategoryPhone, true
	case "accessory", "accessories":
		return CategoryAccessory, true
	}
	return CategoryAccessory, false
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*c = Category(i)
		return nil
	}
	parsed, ok := ParseCategory(str)
	if !ok {
		return fmt.Errorf("unknown category %q", str)
	}
	*c = parsed
	return nil
}

// Value stores the wire name so rows read the same as the remote API.
func (c Category) Value() (driver.Value, error) {
	return c.String(), nil
}

func (c *Category) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = CategoryAccessory
	case string:
		*c, _ = ParseCategory(v)
	case []byte:
		*c, _ = ParseCategory(string(v))
	case int64:
		*c = Category(v)
	}
	return nil
}
