package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

const (
	unknownBrand       = "Unknown"
	defaultSubcategory = "Other"
)

type rawRecord struct {
	value gjson.Result
	hint  *enum.Category
}

// NormalizeCatalog turns raw inventory records into sellable items. Phone
// variants carry nested model info, accessories are flat. Input that is not
// a list of records (or an envelope holding one) yields an empty slice.
func NormalizeCatalog(raw []byte) []entity.SellableItem {
	items := []entity.SellableItem{}
	for _, rec := range recordsOf(raw, "phones", "accessories") {
		if !rec.value.IsObject() {
			continue
		}
		item := normalizeItem(rec.value, rec.hint)
		if item.ID == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// recordsOf accepts a bare array, {"data": [...]}, or an object holding two
// lists. Records of the first list are hinted as phones, of the second as
// accessories; callers that do not care about category ignore the hint.
func recordsOf(raw []byte, firstKey, secondKey string) []rawRecord {
	if !gjson.ValidBytes(raw) {
		return nil
	}
	root := gjson.ParseBytes(raw)
	if data := root.Get("data"); root.IsObject() && data.Exists() {
		root = data
	}

	var out []rawRecord
	switch {
	case root.IsArray():
		root.ForEach(func(_, v gjson.Result) bool {
			out = append(out, rawRecord{value: v})
			return true
		})
	case root.IsObject():
		phone, accessory := enum.CategoryPhone, enum.CategoryAccessory
		if list := root.Get(firstKey); list.IsArray() {
			list.ForEach(func(_, v gjson.Result) bool {
				out = append(out, rawRecord{value: v, hint: &phone})
				return true
			})
		}
		if list := root.Get(secondKey); list.IsArray() {
			list.ForEach(func(_, v gjson.Result) bool {
				out = append(out, rawRecord{value: v, hint: &accessory})
				return true
			})
		}
	}
	return out
}

func categoryOf(rec gjson.Result, hint *enum.Category) enum.Category {
	if hint != nil {
		return *hint
	}
	for _, field := range []string{"type", "category", "item_type"} {
		if c, ok := enum.ParseCategory(rec.Get(field).String()); ok {
			return c
		}
	}
	if rec.Get("model_info").Exists() || rec.Get("imei").Exists() {
		return enum.CategoryPhone
	}
	return enum.CategoryAccessory
}

func normalizeItem(rec gjson.Result, hint *enum.Category) entity.SellableItem {
	if categoryOf(rec, hint) == enum.CategoryPhone {
		return normalizePhone(rec)
	}
	return normalizeAccessory(rec)
}

func normalizePhone(rec gjson.Result) entity.SellableItem {
	brand := firstString(rec, "model_info.brand", "brand")
	if brand == "" {
		brand = unknownBrand
	}
	return entity.SellableItem{
		ID:             idOf(rec.Get("id")),
		Category:       enum.CategoryPhone,
		DisplayName:    phoneName(rec),
		Brand:          brand,
		SKU:            rec.Get("imei").String(),
		UnitPrice:      decimalOf(rec, "sell_price", "price"),
		UnitCost:       decimalOf(rec, "cost_price", "cost"),
		AvailableStock: intOf(rec, "quantity", "stock"),
	}
}

// phoneName is "<model> (<storage>GB/<ram>GB) - <color>", omitting parts
// that are missing.
func phoneName(rec gjson.Result) string {
	var b strings.Builder
	model := firstString(rec, "model_info.model_name", "model_name", "name")
	if model == "" {
		model = "Phone"
	}
	b.WriteString(model)

	storage, ram := intOf(rec, "storage"), intOf(rec, "ram")
	switch {
	case storage > 0 && ram > 0:
		b.WriteString(" (" + strconv.Itoa(storage) + "GB/" + strconv.Itoa(ram) + "GB)")
	case storage > 0:
		b.WriteString(" (" + strconv.Itoa(storage) + "GB)")
	}
	if color := strings.TrimSpace(rec.Get("color").String()); color != "" {
		b.WriteString(" - " + color)
	}
	return b.String()
}

func normalizeAccessory(rec gjson.Result) entity.SellableItem {
	name := firstString(rec, "name", "sku")
	if name == "" {
		name = "Accessory"
	}
	brand := firstString(rec, "brand")
	if brand == "" {
		brand = unknownBrand
	}
	sub := firstString(rec, "subcategory", "type")
	if _, isCategory := enum.ParseCategory(sub); isCategory || sub == "" {
		sub = defaultSubcategory
	}
	return entity.SellableItem{
		ID:             idOf(rec.Get("id")),
		Category:       enum.CategoryAccessory,
		DisplayName:    name,
		Brand:          brand,
		SKU:            rec.Get("sku").String(),
		Subcategory:    sub,
		UnitPrice:      decimalOf(rec, "sell_price", "price"),
		UnitCost:       decimalOf(rec, "cost_price", "cost"),
		AvailableStock: intOf(rec, "quantity", "stock"),
	}
}

// NormalizeTransactions turns raw sale records into transactions. Missing or
// malformed dates become the zero time and missing amounts become zero.
func NormalizeTransactions(raw []byte) []entity.Transaction {
	txns := []entity.Transaction{}
	for _, rec := range recordsOf(raw, "sales", "transactions") {
		if !rec.value.IsObject() {
			continue
		}
		txns = append(txns, normalizeTransaction(rec.value))
	}
	return txns
}

func normalizeTransaction(rec gjson.Result) entity.Transaction {
	pm, _ := enum.ParsePaymentMethod(rec.Get("payment_method").String())
	t := entity.Transaction{
		ID:            idOf(rec.Get("id")),
		Date:          dateOf(rec, "date", "sale_date", "created_at"),
		Subtotal:      decimalOf(rec, "subtotal"),
		Discount:      decimalOf(rec, "discount_amount", "discount"),
		Tax:           decimalOf(rec, "tax_amount", "tax"),
		Total:         decimalOf(rec, "total", "total_amount"),
		Paid:          decimalOf(rec, "paid_amount", "amount_received"),
		Profit:        signedDecimalOf(rec, "profit", "total_profit"),
		PaymentMethod: pm,
		WorkerID:      idOf(rec.Get("worker_id")),
		Customer: entity.CustomerInfo{
			Name:  firstString(rec, "customer_name", "customer.name"),
			Phone: firstString(rec, "customer_phone", "customer.phone"),
		},
	}
	t.Change = decimal.Max(decimal.Zero, t.Paid.Sub(t.Total))
	rec.Get("items").ForEach(func(_, v gjson.Result) bool {
		cat, _ := enum.ParseCategory(firstString(v, "type", "item_type"))
		t.Lines = append(t.Lines, entity.SaleLine{
			ItemID:    idOf(v.Get("id")),
			Category:  cat,
			Name:      v.Get("name").String(),
			Quantity:  intOf(v, "quantity"),
			UnitPrice: decimalOf(v, "price"),
			UnitCost:  decimalOf(v, "cost_price", "cost"),
		})
		return true
	})
	return t
}

func firstString(rec gjson.Result, paths ...string) string {
	for _, p := range paths {
		if s := strings.TrimSpace(rec.Get(p).String()); s != "" {
			return s
		}
	}
	return ""
}

// idOf renders numeric ids without an exponent or fraction
func idOf(v gjson.Result) string {
	switch v.Type {
	case gjson.Number:
		if v.Num == float64(int64(v.Num)) {
			return strconv.FormatInt(int64(v.Num), 10)
		}
		return v.Raw
	case gjson.String:
		return strings.TrimSpace(v.Str)
	}
	return ""
}

// decimalOf coerces the first present field to a non-negative decimal.
// Anything unparseable or negative is zero.
func decimalOf(rec gjson.Result, paths ...string) decimal.Decimal {
	d := signedDecimalOf(rec, paths...)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// signedDecimalOf coerces the first present field to a decimal, keeping its
// sign. Strings and numbers are accepted; anything unparseable is zero.
func signedDecimalOf(rec gjson.Result, paths ...string) decimal.Decimal {
	for _, p := range paths {
		v := rec.Get(p)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		var s string
		switch v.Type {
		case gjson.Number:
			s = v.Raw
		case gjson.String:
			s = strings.TrimSpace(v.Str)
		default:
			return decimal.Zero
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	}
	return decimal.Zero
}

// intOf is decimalOf truncated to an integer
func intOf(rec gjson.Result, paths ...string) int {
	return int(decimalOf(rec, paths...).IntPart())
}

func dateOf(rec gjson.Result, paths ...string) time.Time {
	layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02"}
	for _, p := range paths {
		s := strings.TrimSpace(rec.Get(p).String())
		if s == "" {
			continue
		}
		for _, layout := range layouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return t
			}
		}
		return time.Time{}
	}
	return time.Time{}
}
