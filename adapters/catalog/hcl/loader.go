// Package hcl loads rate catalogs from HCL rate files.
// Amounts are written as strings so they are read exactly, never through floats.
package hcl

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.uber.org/zap"

	"listing-pricing/core/catalog"
	"listing-pricing/core/types"
	"listing-pricing/internal/errors"
	"listing-pricing/internal/logging"
)

type rateFile struct {
	Currency   string          `hcl:"currency"`
	Referral   string          `hcl:"referral_discount_percent"`
	Durations  durationsBlock  `hcl:"durations,block"`
	Categories []categoryBlock `hcl:"category,block"`
}

type durationsBlock struct {
	AutoRenewBonus  string          `hcl:"auto_renew_bonus_percent,optional"`
	AutoRenewMonths int             `hcl:"auto_renew_months,optional"`
	Discounts       []discountBlock `hcl:"discount,block"`
}

type discountBlock struct {
	Months  int    `hcl:"months"`
	Percent string `hcl:"percent"`
}

type categoryBlock struct {
	Name        string           `hcl:"name,label"`
	DisplayName string           `hcl:"display_name"`
	Noun        string           `hcl:"noun"`
	Promo       string           `hcl:"promo,optional"`
	Tiers       []tierBlock      `hcl:"tier,block"`
	InviteOnly  *inviteOnlyBlock `hcl:"invite_only,block"`
	Renewal     renewalBlock     `hcl:"renewal,block"`
	Addons      []addonBlock     `hcl:"addon,block"`
}

type tierBlock struct {
	Name    string `hcl:"name,label"`
	Monthly string `hcl:"monthly"`
}

type inviteOnlyBlock struct {
	Tier          string   `hcl:"tier,label"`
	Price         string   `hcl:"price"`
	Reference     string   `hcl:"reference"`
	TermMonths    int      `hcl:"term_months"`
	ChargedAddons []string `hcl:"charged_addons,optional"`
}

type renewalBlock struct {
	Fee       string `hcl:"fee"`
	Reference string `hcl:"reference"`
}

type addonBlock struct {
	Name  string `hcl:"name,label"`
	Label string `hcl:"label"`
	Fee   string `hcl:"fee"`
}

// LoadFile reads and validates a rate file
func LoadFile(path string) (*catalog.RateCatalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Catalog("failed to read rate file", err).WithContext("path", path)
	}
	return Parse(src, path)
}

// Parse decodes a rate file body. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*catalog.RateCatalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Catalog("failed to parse rate file", diags).WithContext("path", filename)
	}

	var rf rateFile
	if diags := gohcl.DecodeBody(file.Body, nil, &rf); diags.HasErrors() {
		return nil, errors.Catalog("failed to decode rate file", diags).WithContext("path", filename)
	}

	c, err := rf.build()
	if err != nil {
		return nil, err
	}

	logging.Debug("rate catalog loaded",
		zap.String("path", filename),
		zap.Int("categories", len(c.Categories())),
		zap.String("hash", c.Hash().Short()))
	return c, nil
}

func (rf rateFile) build() (*catalog.RateCatalog, error) {
	p := &amountParser{}

	durations := catalog.DurationSchedule{
		Discounts:       make(map[int]types.Percent, len(rf.Durations.Discounts)),
		AutoRenewBonus:  types.ZeroPercent,
		AutoRenewMonths: rf.Durations.AutoRenewMonths,
	}
	if rf.Durations.AutoRenewBonus != "" {
		durations.AutoRenewBonus = p.percent("auto_renew_bonus_percent", rf.Durations.AutoRenewBonus)
	}
	for _, d := range rf.Durations.Discounts {
		if _, dup := durations.Discounts[d.Months]; dup {
			p.fail(fmt.Errorf("duration %d is listed twice", d.Months))
		}
		durations.Discounts[d.Months] = p.percent(fmt.Sprintf("discount %d", d.Months), d.Percent)
	}

	referral := p.percent("referral_discount_percent", rf.Referral)

	schedules := make([]catalog.RateSchedule, 0, len(rf.Categories))
	for _, cb := range rf.Categories {
		schedules = append(schedules, cb.schedule(p))
	}
	if p.err != nil {
		return nil, errors.Catalog("invalid rate file", p.err)
	}

	return catalog.New(types.Currency(rf.Currency), durations, referral, schedules...)
}

func (cb categoryBlock) schedule(p *amountParser) catalog.RateSchedule {
	category, err := types.ParseCategory(cb.Name)
	p.fail(err)

	s := catalog.RateSchedule{
		Category:    category,
		DisplayName: cb.DisplayName,
		Noun:        cb.Noun,
		Promo:       cb.Promo,
		Tiers:       make(map[types.Tier]types.Money, len(cb.Tiers)),
		Renewal: catalog.RenewalRate{
			Fee:       p.money(cb.Name+" renewal fee", cb.Renewal.Fee),
			Reference: p.money(cb.Name+" renewal reference", cb.Renewal.Reference),
		},
	}

	for _, tb := range cb.Tiers {
		tier, err := types.ParseTier(tb.Name)
		p.fail(err)
		s.Tiers[tier] = p.money(cb.Name+" tier "+tb.Name, tb.Monthly)
	}

	if ib := cb.InviteOnly; ib != nil {
		tier, err := types.ParseTier(ib.Tier)
		p.fail(err)
		inv := &catalog.InviteOnlyRate{
			Tier:       tier,
			Price:      p.money(cb.Name+" invite-only price", ib.Price),
			Reference:  p.money(cb.Name+" invite-only reference", ib.Reference),
			TermMonths: ib.TermMonths,
		}
		for _, name := range ib.ChargedAddons {
			addon, err := types.ParseAddon(name)
			p.fail(err)
			inv.ChargedAddons = append(inv.ChargedAddons, addon)
		}
		s.InviteOnly = inv
	}

	for _, ab := range cb.Addons {
		addon, err := types.ParseAddon(ab.Name)
		p.fail(err)
		s.Addons = append(s.Addons, catalog.AddonRate{
			Addon: addon,
			Label: ab.Label,
			Fee:   p.money(cb.Name+" add-on "+ab.Name, ab.Fee),
		})
	}
	return s
}

// amountParser keeps the first conversion error so a whole file can be walked
// before reporting
type amountParser struct {
	err error
}

func (p *amountParser) fail(err error) {
	if p.err == nil && err != nil {
		p.err = err
	}
}

func (p *amountParser) money(field, value string) types.Money {
	m, err := types.NewMoney(value)
	if err != nil {
		p.fail(fmt.Errorf("%s: %w", field, err))
		return types.ZeroMoney
	}
	return m
}

func (p *amountParser) percent(field, value string) types.Percent {
	pct, err := types.ParsePercent(value)
	if err != nil {
		p.fail(fmt.Errorf("%s: %w", field, err))
		return types.ZeroPercent
	}
	return pct
}
