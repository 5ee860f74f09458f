package alphavantage

import (
	"context"
	"fmt"
	"strconv"

	"github.com/moznion/go-optional"

	"marketbrain/internal/provider"
)

type OverviewResponse struct {
	notice
	Symbol               string `json:"Symbol"`
	Name                 string `json:"Name"`
	Description          string `json:"Description"`
	Exchange             string `json:"Exchange"`
	Currency             string `json:"Currency"`
	Country              string `json:"Country"`
	Sector               string `json:"Sector"`
	Industry             string `json:"Industry"`
	MarketCapitalization string `json:"MarketCapitalization"`
	FullTimeEmployees    string `json:"FullTimeEmployees"`
	OfficialSite         string `json:"OfficialSite"`
}

func (p *Provider) CompanyInfo(ctx context.Context, params provider.CompanyInfoParams) (optional.Option[provider.CompanyInfo], error) {
	var result OverviewResponse
	if err := p.query(ctx, "OVERVIEW", map[string]string{"symbol": params.Symbol}, &result); err != nil {
		return optional.None[provider.CompanyInfo](), fmt.Errorf("failed to fetch overview for %s: %w", params.Symbol, err)
	}
	if result.Symbol == "" {
		return optional.None[provider.CompanyInfo](), nil
	}

	employees, _ := strconv.Atoi(result.FullTimeEmployees)
	return optional.Some(provider.CompanyInfo{
		Symbol:      result.Symbol,
		Name:        result.Name,
		Exchange:    result.Exchange,
		Sector:      result.Sector,
		Industry:    result.Industry,
		Country:     result.Country,
		Currency:    result.Currency,
		Description: result.Description,
		Website:     result.OfficialSite,
		MarketCap:   num(result.MarketCapitalization),
		Employees:   employees,
	}), nil
}
