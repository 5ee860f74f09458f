package main

import (
	"marketbrain/internal/alphavantage"
	"marketbrain/internal/binance"
	"marketbrain/internal/polygon"
	"marketbrain/internal/registry"
)

// factories maps configured provider names to adapter constructors.
func factories() map[string]registry.Factory {
	return map[string]registry.Factory{
		alphavantage.Name: alphavantage.Factory,
		polygon.Name:      polygon.Factory,
		binance.Name:      binance.Factory,
	}
}
