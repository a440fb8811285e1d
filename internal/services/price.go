package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// priceReplacer strips currency formatting: dollar signs, thousands
// separators, non-breaking spaces.
var priceReplacer = strings.NewReplacer("$", "", ",", "", " ", "")

// ParsePrice converts a currency string like "$14.70" to 14.70. This is the
// strict path used for order-line prices: a malformed value is an error, never
// a silent zero, since a zero here would corrupt downstream cost calculations.
func ParsePrice(raw string) (float64, error) {
	cleaned := strings.TrimSpace(priceReplacer.Replace(raw))
	if cleaned == "" {
		return 0, fmt.Errorf("price %q is empty after cleaning", raw)
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("price %q is not a number", raw)
	}
	return v, nil
}

// CleanPrice converts a currency string to a float, degrading to 0.0 with a
// warning when the value cannot be parsed. This is the lenient path reserved
// for catalog-sourced price data, which is dirty in practice and must not
// fail a whole line.
func CleanPrice(raw string, log *logrus.Logger) float64 {
	v, err := ParsePrice(raw)
	if err != nil {
		if log == nil {
			log = logrus.StandardLogger()
		}
		log.WithField("value", raw).Warn("Could not parse price, defaulting to 0.0")
		return 0
	}
	return v
}
