// Package currency performs fixed-rate conversion through USD as the pivot.
// The four rate constants are part of the observable contract: the CNY/USD
// pair is deliberately not a true inverse, so round trips are inexact, and
// all arithmetic is plain float64.
package currency

import (
	"errors"
	"fmt"
)

const (
	USD = "USD"
	CNY = "CNY"
	EUR = "EUR"
)

const (
	rateUSDToCNY = 7.1
	rateUSDToEUR = 0.95
	rateCNYToUSD = 0.1408
	rateEURToUSD = 1.05
)

var ErrUnsupportedCurrency = errors.New("unsupported currency")

// toUSD converts an amount in the source currency into USD.
func toUSD(amount float64, source string) (float64, error) {
	switch source {
	case USD:
		return amount, nil
	case CNY:
		return amount * rateCNYToUSD, nil
	case EUR:
		return amount * rateEURToUSD, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, source)
}

// fromUSD converts a USD amount into the target currency.
func fromUSD(amount float64, target string) (float64, error) {
	switch target {
	case USD:
		return amount, nil
	case CNY:
		return amount * rateUSDToCNY, nil
	case EUR:
		return amount * rateUSDToEUR, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, target)
}

// Convert converts amount from source to target via the USD pivot.
// Same-currency conversion is the identity.
func Convert(amount float64, source, target string) (float64, error) {
	if source == target {
		if _, err := toUSD(0, source); err != nil {
			return 0, err
		}
		return amount, nil
	}
	usd, err := toUSD(amount, source)
	if err != nil {
		return 0, err
	}
	return fromUSD(usd, target)
}

// Supported lists the currencies the fixed-rate table covers.
func Supported() []string {
	return []string{USD, CNY, EUR}
}

// IsSupported reports whether code is in the fixed-rate table.
func IsSupported(code string) bool {
	return code == USD || code == CNY || code == EUR
}
