package protocol

import "strings"

// Security types with special wire handling.
const (
	SecTypeBag  = "BAG"
	SecTypeBond = "BOND"
)

// TagValue is a vendor-extensible option pair.
type TagValue struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// ComboLeg is one component of a combination contract.
type ComboLeg struct {
	ConID     int    `json:"conId"`
	Ratio     int    `json:"ratio"`
	Action    string `json:"action"` // BUY, SELL, SSHORT
	Exchange  string `json:"exchange"`
	OpenClose int    `json:"openClose"` // 0 same as parent, 1 open, 2 close, 3 unknown

	// Institutional short sale fields.
	ShortSaleSlot      int      `json:"shortSaleSlot"` // 1 clearing broker, 2 third party
	DesignatedLocation string   `json:"designatedLocation"`
	ExemptCode         Opt[int] `json:"exemptCode"`
}

// UnderComp is the delta-neutral companion of a contract.
type UnderComp struct {
	ConID int     `json:"conId"`
	Delta float64 `json:"delta"`
	Price float64 `json:"price"`
}

// Contract identifies a tradable instrument.
type Contract struct {
	ConID           int     `json:"conId"`
	Symbol          string  `json:"symbol"`
	SecType         string  `json:"secType"`
	Expiry          string  `json:"expiry"`
	Strike          float64 `json:"strike"`
	Right           string  `json:"right"`
	Multiplier      string  `json:"multiplier"`
	Exchange        string  `json:"exchange"`
	PrimaryExchange string  `json:"primaryExchange"`
	Currency        string  `json:"currency"`
	LocalSymbol     string  `json:"localSymbol"`
	TradingClass    string  `json:"tradingClass"`
	IncludeExpired  bool    `json:"includeExpired"`
	SecIDType       string  `json:"secIdType"` // CUSIP, SEDOL, ISIN, RIC
	SecID           string  `json:"secId"`

	ComboLegsDescription string     `json:"comboLegsDescription,omitempty"`
	ComboLegs            []ComboLeg `json:"comboLegs,omitempty"`
	UnderComp            *UnderComp `json:"underComp,omitempty"`
}

// IsBag reports whether the contract is a combination.
func (c *Contract) IsBag() bool {
	return strings.EqualFold(c.SecType, SecTypeBag)
}

// Equal reports whether two contracts describe the same instrument.
// Combo legs are compared as an unordered collection. For bonds the
// descriptive fields that the gateway does not echo back are ignored.
func (c *Contract) Equal(o *Contract) bool {
	if c == o {
		return true
	}
	if c == nil || o == nil {
		return false
	}
	if c.ConID != o.ConID || c.SecType != o.SecType {
		return false
	}
	if !strings.EqualFold(c.SecType, SecTypeBond) {
		if c.Strike != o.Strike ||
			c.Symbol != o.Symbol ||
			c.Currency != o.Currency ||
			c.Expiry != o.Expiry ||
			c.Right != o.Right ||
			c.Multiplier != o.Multiplier ||
			c.LocalSymbol != o.LocalSymbol ||
			c.TradingClass != o.TradingClass {
			return false
		}
	}
	if c.Exchange != o.Exchange ||
		c.PrimaryExchange != o.PrimaryExchange ||
		c.SecIDType != o.SecIDType ||
		c.SecID != o.SecID {
		return false
	}
	if !sameLegs(c.ComboLegs, o.ComboLegs) {
		return false
	}
	switch {
	case c.UnderComp == nil && o.UnderComp == nil:
		return true
	case c.UnderComp == nil || o.UnderComp == nil:
		return false
	default:
		return *c.UnderComp == *o.UnderComp
	}
}

func sameLegs(a, b []ComboLeg) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[ComboLeg]int, len(a))
	for _, l := range a {
		counts[l]++
	}
	for _, l := range b {
		if counts[l] == 0 {
			return false
		}
		counts[l]--
	}
	return true
}

// ContractDetails is the gateway's description of a contract.
type ContractDetails struct {
	Summary        Contract   `json:"summary"`
	MarketName     string     `json:"marketName"`
	MinTick        float64    `json:"minTick"`
	PriceMagnifier int        `json:"priceMagnifier"`
	OrderTypes     string     `json:"orderTypes"`
	ValidExchanges string     `json:"validExchanges"`
	UnderConID     int        `json:"underConId"`
	LongName       string     `json:"longName"`
	ContractMonth  string     `json:"contractMonth"`
	Industry       string     `json:"industry"`
	Category       string     `json:"category"`
	Subcategory    string     `json:"subcategory"`
	TimeZoneID     string     `json:"timeZoneId"`
	TradingHours   string     `json:"tradingHours"`
	LiquidHours    string     `json:"liquidHours"`
	EvRule         string     `json:"evRule"`
	EvMultiplier   float64    `json:"evMultiplier"`
	SecIDList      []TagValue `json:"secIdList,omitempty"`

	// Bond fields.
	Cusip             string  `json:"cusip,omitempty"`
	Ratings           string  `json:"ratings,omitempty"`
	DescAppend        string  `json:"descAppend,omitempty"`
	BondType          string  `json:"bondType,omitempty"`
	CouponType        string  `json:"couponType,omitempty"`
	Callable          bool    `json:"callable,omitempty"`
	Putable           bool    `json:"putable,omitempty"`
	Coupon            float64 `json:"coupon,omitempty"`
	Convertible       bool    `json:"convertible,omitempty"`
	Maturity          string  `json:"maturity,omitempty"`
	IssueDate         string  `json:"issueDate,omitempty"`
	NextOptionDate    string  `json:"nextOptionDate,omitempty"`
	NextOptionType    string  `json:"nextOptionType,omitempty"`
	NextOptionPartial bool    `json:"nextOptionPartial,omitempty"`
	Notes             string  `json:"notes,omitempty"`
}
