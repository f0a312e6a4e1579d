package enum

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DiscountKind represents how a whole-cart discount value is read
type DiscountKind int

const (
	DiscountFixed      DiscountKind = 0
	DiscountPercentage DiscountKind = 1
)

func (k DiscountKind) String() string {
	names := [...]string{"fixed", "percentage"}
	if int(k) < 0 || int(k) >= len(names) {
		return "fixed"
	}
	return names[k]
}

func ParseDiscountKind(s string) (DiscountKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed", "amount":
		return DiscountFixed, true
	case "percentage", "percent":
		return DiscountPercentage, true
	}
	return DiscountFixed, false
}

func (k DiscountKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *DiscountKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = DiscountKind(i)
		return nil
	}
	parsed, ok := ParseDiscountKind(str)
	if !ok {
		return fmt.Errorf("unknown discount kind %q", str)
	}
	*k = parsed
	return nil
}
