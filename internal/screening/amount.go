package screening

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a currency field that accepts either a JSON number or a form
// string such as "$2,500.00".
type Amount string

// UnmarshalJSON accepts a string, a number or null. Numbers are rewritten in
// plain decimal notation, so 1e3 becomes "1000".
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a string or number: %w", err)
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return fmt.Errorf("amount %s is not a decimal number: %w", n, err)
	}
	*a = Amount(d.String())
	return nil
}
