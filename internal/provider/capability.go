package provider

import "strings"

// Capability is one kind of data operation an adapter may support.
type Capability uint16

const (
	CapabilityQuote Capability = iota
	CapabilityHistorical
	CapabilityOptionsChain
	CapabilityCompanyInfo
	CapabilityFundamentals
	CapabilityEarnings
	CapabilityDividends
	CapabilitySplits
	CapabilityNews
	CapabilityEconomicEvents
	CapabilityTechnicalIndicators
	CapabilityMarketStatus
	CapabilityEarningsCalendar
	CapabilityEarningsTranscript

	capabilityCount
)

var capabilityNames = [capabilityCount]string{
	CapabilityQuote:               "quote",
	CapabilityHistorical:          "historical",
	CapabilityOptionsChain:        "options_chain",
	CapabilityCompanyInfo:         "company_info",
	CapabilityFundamentals:        "fundamentals",
	CapabilityEarnings:            "earnings",
	CapabilityDividends:           "dividends",
	CapabilitySplits:              "splits",
	CapabilityNews:                "news",
	CapabilityEconomicEvents:      "economic_events",
	CapabilityTechnicalIndicators: "technical_indicators",
	CapabilityMarketStatus:        "market_status",
	CapabilityEarningsCalendar:    "earnings_calendar",
	CapabilityEarningsTranscript:  "earnings_transcript",
}

// String returns the stable snake_case name, also used as the cache key prefix.
func (c Capability) String() string {
	if c >= capabilityCount {
		return "unknown"
	}
	return capabilityNames[c]
}

// AllCapabilities lists every capability in declaration order.
func AllCapabilities() []Capability {
	out := make([]Capability, 0, capabilityCount)
	for c := Capability(0); c < capabilityCount; c++ {
		out = append(out, c)
	}
	return out
}

// ParseCapability is the inverse of Capability.String.
func ParseCapability(name string) (Capability, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c := Capability(0); c < capabilityCount; c++ {
		if capabilityNames[c] == name {
			return c, true
		}
	}
	return 0, false
}

// CapabilitySet is a bitmask of the capabilities an adapter declares.
type CapabilitySet uint32

// NewCapabilitySet builds a set from the given capabilities.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	var s CapabilitySet
	for _, c := range caps {
		if c < capabilityCount {
			s |= 1 << c
		}
	}
	return s
}

// Has reports whether c is in the set.
func (s CapabilitySet) Has(c Capability) bool {
	return c < capabilityCount && s&(1<<c) != 0
}

// List returns the members in declaration order.
func (s CapabilitySet) List() []Capability {
	var out []Capability
	for c := Capability(0); c < capabilityCount; c++ {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s CapabilitySet) String() string {
	caps := s.List()
	names := make([]string, len(caps))
	for i, c := range caps {
		names[i] = c.String()
	}
	return strings.Join(names, ",")
}
