package protocol

import "strings"

// Execution is a fill report.
type Execution struct {
	OrderID      int     `json:"orderId"`
	ClientID     int     `json:"clientId"`
	ExecID       string  `json:"execId"`
	Time         string  `json:"time"`
	AcctNumber   string  `json:"acctNumber"`
	Exchange     string  `json:"exchange"`
	Side         string  `json:"side"`
	Shares       int     `json:"shares"`
	Price        float64 `json:"price"`
	PermID       int     `json:"permId"`
	Liquidation  int     `json:"liquidation"`
	CumQty       int     `json:"cumQty"`
	AvgPrice     float64 `json:"avgPrice"`
	OrderRef     string  `json:"orderRef"`
	EvRule       string  `json:"evRule"`
	EvMultiplier float64 `json:"evMultiplier"`
}

// TradeKey returns the execution id up to its last '.', which groups the
// partial fills and corrections of one trade.
func (e *Execution) TradeKey() string {
	return TradeKey(e.ExecID)
}

// TradeKey returns execID up to its last '.'. An id without a dot is its
// own key.
func TradeKey(execID string) string {
	if i := strings.LastIndexByte(execID, '.'); i >= 0 {
		return execID[:i]
	}
	return execID
}

// ExecutionFilter narrows an executions request. Empty fields match all.
type ExecutionFilter struct {
	ClientID int    `json:"clientId"`
	AcctCode string `json:"acctCode"`
	Time     string `json:"time"` // yyyymmdd-hh:mm:ss
	Symbol   string `json:"symbol"`
	SecType  string `json:"secType"`
	Exchange string `json:"exchange"`
	Side     string `json:"side"`
}

// CommissionReport is the commission charged for one execution. The
// gateway marks not-applicable amounts as unset.
type CommissionReport struct {
	ExecID              string       `json:"execId"`
	Commission          float64      `json:"commission"`
	Currency            string       `json:"currency"`
	RealizedPNL         Opt[float64] `json:"realizedPnl"`
	Yield               Opt[float64] `json:"yield"`
	YieldRedemptionDate int          `json:"yieldRedemptionDate"` // YYYYMMDD
}

// Bar is one historical data bar.
type Bar struct {
	Date     string  `json:"date"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	Volume   int     `json:"volume"`
	WAP      float64 `json:"wap"`
	HasGaps  bool    `json:"hasGaps"`
	BarCount int     `json:"barCount"` // -1 when the server does not report it
}

// NoRowNumberSpecified asks the scanner for its default row count.
const NoRowNumberSpecified = -1

// ScannerSubscription describes a market scan.
type ScannerSubscription struct {
	NumberOfRows             int          `json:"numberOfRows"`
	Instrument               string       `json:"instrument"`
	LocationCode             string       `json:"locationCode"`
	ScanCode                 string       `json:"scanCode"`
	AbovePrice               Opt[float64] `json:"abovePrice"`
	BelowPrice               Opt[float64] `json:"belowPrice"`
	AboveVolume              Opt[int]     `json:"aboveVolume"`
	MarketCapAbove           Opt[float64] `json:"marketCapAbove"`
	MarketCapBelow           Opt[float64] `json:"marketCapBelow"`
	MoodyRatingAbove         string       `json:"moodyRatingAbove"`
	MoodyRatingBelow         string       `json:"moodyRatingBelow"`
	SPRatingAbove            string       `json:"spRatingAbove"`
	SPRatingBelow            string       `json:"spRatingBelow"`
	MaturityDateAbove        string       `json:"maturityDateAbove"`
	MaturityDateBelow        string       `json:"maturityDateBelow"`
	CouponRateAbove          Opt[float64] `json:"couponRateAbove"`
	CouponRateBelow          Opt[float64] `json:"couponRateBelow"`
	ExcludeConvertible       string       `json:"excludeConvertible"`
	AverageOptionVolumeAbove Opt[int]     `json:"averageOptionVolumeAbove"`
	ScannerSettingPairs      string       `json:"scannerSettingPairs"`
	StockTypeFilter          string       `json:"stockTypeFilter"`
}

// NewScannerSubscription returns a subscription with the default row count.
func NewScannerSubscription() *ScannerSubscription {
	return &ScannerSubscription{NumberOfRows: NoRowNumberSpecified}
}
