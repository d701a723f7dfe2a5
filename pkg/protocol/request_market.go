package protocol

// ReqMktData subscribes to streaming quotes, or requests a single snapshot.
type ReqMktData struct {
	TickerID     int
	Contract     *Contract
	GenericTicks string // comma separated generic tick types
	Snapshot     bool
	Options      []TagValue
}

func (r *ReqMktData) Tag() OutTag    { return OutReqMktData }
func (r *ReqMktData) RequestID() int { return r.TickerID }

func (r *ReqMktData) Encode(e *Encoder, sv int) error {
	c := orZero(r.Contract)
	if err := firstErr(
		require(sv, FeatureSnapshotMktData, r.Snapshot, r.TickerID,
			"  It does not support snapshot market data requests."),
		require(sv, FeatureUnderComp, c.UnderComp != nil, r.TickerID,
			"  It does not support delta-neutral orders."),
		require(sv, FeatureReqMktDataConID, c.ConID > 0, r.TickerID,
			"  It does not support conId parameter."),
		require(sv, FeatureTradingClass, c.TradingClass != "", r.TickerID,
			"  It does not support tradingClass parameter in reqMarketData."),
	); err != nil {
		return err
	}

	header(e, r.Tag(), 11)
	e.WriteInt(r.TickerID)
	if Supports(sv, FeatureReqMktDataConID) {
		e.WriteInt(c.ConID)
	}
	e.WriteString(c.Symbol)
	e.WriteString(c.SecType)
	e.WriteString(c.Expiry)
	e.WriteFloat(c.Strike)
	e.WriteString(c.Right)
	if Supports(sv, FeatureMultiplier) {
		e.WriteString(c.Multiplier)
	}
	e.WriteString(c.Exchange)
	if Supports(sv, FeaturePrimaryExchange) {
		e.WriteString(c.PrimaryExchange)
	}
	e.WriteString(c.Currency)
	if Supports(sv, FeatureLocalSymbol) {
		e.WriteString(c.LocalSymbol)
	}
	if Supports(sv, FeatureTradingClass) {
		e.WriteString(c.TradingClass)
	}
	if Supports(sv, FeatureComboLegs) && c.IsBag() {
		writeBagLegs(e, c)
	}
	if Supports(sv, FeatureUnderComp) {
		writeUnderComp(e, c.UnderComp)
	}
	if Supports(sv, FeatureGenericTicks) {
		e.WriteString(r.GenericTicks)
	}
	if Supports(sv, FeatureSnapshotMktData) {
		e.WriteBool(r.Snapshot)
	}
	if Supports(sv, FeatureLinking) {
		e.WriteTagValues(r.Options)
	}
	return nil
}

// ReqMktDepth subscribes to order book updates.
type ReqMktDepth struct {
	TickerID int
	Contract *Contract
	NumRows  int
	Options  []TagValue
}

func (r *ReqMktDepth) Tag() OutTag    { return OutReqMktDepth }
func (r *ReqMktDepth) RequestID() int { return r.TickerID }

func (r *ReqMktDepth) Encode(e *Encoder, sv int) error {
	c := orZero(r.Contract)
	if err := firstErr(
		unsupported(sv, FeatureMarketDepth, ""),
		require(sv, FeatureTradingClass, c.TradingClass != "" || c.ConID > 0, r.TickerID,
			"  It does not support conId and tradingClass parameters in reqMktDepth."),
	); err != nil {
		return err
	}

	header(e, r.Tag(), 5)
	e.WriteInt(r.TickerID)
	if Supports(sv, FeatureTradingClass) {
		e.WriteInt(c.ConID)
	}
	e.WriteString(c.Symbol)
	e.WriteString(c.SecType)
	e.WriteString(c.Expiry)
	e.WriteFloat(c.Strike)
	e.WriteString(c.Right)
	if Supports(sv, FeatureMultiplier) {
		e.WriteString(c.Multiplier)
	}
	e.WriteString(c.Exchange)
	e.WriteString(c.Currency)
	e.WriteString(c.LocalSymbol)
	if Supports(sv, FeatureTradingClass) {
		e.WriteString(c.TradingClass)
	}
	if Supports(sv, FeatureMarketDepthRows) {
		e.WriteInt(r.NumRows)
	}
	if Supports(sv, FeatureLinking) {
		e.WriteTagValues(r.Options)
	}
	return nil
}

type CancelMktDepth struct{ TickerID int }

func (r *CancelMktDepth) Tag() OutTag    { return OutCancelMktDepth }
func (r *CancelMktDepth) RequestID() int { return r.TickerID }
func (r *CancelMktDepth) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureMarketDepth, ""); err != nil {
		return err
	}
	idOnly(e, r.Tag(), r.TickerID)
	return nil
}

// ReqHistoricalData requests bars ending at EndDateTime and spanning
// Duration ("1 D", "2 W").
type ReqHistoricalData struct {
	TickerID    int
	Contract    *Contract
	EndDateTime string
	Duration    string
	BarSize     string
	WhatToShow  string
	UseRTH      int
	FormatDate  int // 1 for yyyymmdd hh:mm:ss, 2 for epoch seconds
	Options     []TagValue
}

func (r *ReqHistoricalData) Tag() OutTag    { return OutReqHistoricalData }
func (r *ReqHistoricalData) RequestID() int { return r.TickerID }

func (r *ReqHistoricalData) Encode(e *Encoder, sv int) error {
	c := orZero(r.Contract)
	if err := firstErr(
		unsupported(sv, FeatureHistoricalData, "  It does not support historical data backfill."),
		require(sv, FeatureTradingClass, c.TradingClass != "" || c.ConID > 0, r.TickerID,
			"  It does not support conId and tradingClass parameters in reqHistroricalData."),
	); err != nil {
		return err
	}

	header(e, r.Tag(), 6)
	e.WriteInt(r.TickerID)
	if Supports(sv, FeatureTradingClass) {
		e.WriteInt(c.ConID)
	}
	e.WriteString(c.Symbol)
	e.WriteString(c.SecType)
	e.WriteString(c.Expiry)
	e.WriteFloat(c.Strike)
	e.WriteString(c.Right)
	e.WriteString(c.Multiplier)
	e.WriteString(c.Exchange)
	e.WriteString(c.PrimaryExchange)
	e.WriteString(c.Currency)
	e.WriteString(c.LocalSymbol)
	if Supports(sv, FeatureTradingClass) {
		e.WriteString(c.TradingClass)
	}
	if Supports(sv, FeatureIncludeExpired) {
		e.WriteBool(c.IncludeExpired)
	}
	if Supports(sv, FeatureServerTime) {
		e.WriteString(r.EndDateTime)
		e.WriteString(r.BarSize)
	}
	e.WriteString(r.Duration)
	e.WriteInt(r.UseRTH)
	e.WriteString(r.WhatToShow)
	if Supports(sv, FeatureHistoricalFormatDate) {
		e.WriteInt(r.FormatDate)
	}
	if c.IsBag() {
		writeBagLegs(e, c)
	}
	if Supports(sv, FeatureLinking) {
		e.WriteTagValues(r.Options)
	}
	return nil
}

type CancelHistoricalData struct{ TickerID int }

func (r *CancelHistoricalData) Tag() OutTag    { return OutCancelHistoricalData }
func (r *CancelHistoricalData) RequestID() int { return r.TickerID }
func (r *CancelHistoricalData) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureCancelHistoricalData, "  It does not support historical data query cancellation."); err != nil {
		return err
	}
	idOnly(e, r.Tag(), r.TickerID)
	return nil
}

// ReqRealTimeBars subscribes to five second bars.
type ReqRealTimeBars struct {
	TickerID   int
	Contract   *Contract
	BarSize    int // ignored by the server, always 5
	WhatToShow string
	UseRTH     bool
	Options    []TagValue
}

func (r *ReqRealTimeBars) Tag() OutTag    { return OutReqRealTimeBars }
func (r *ReqRealTimeBars) RequestID() int { return r.TickerID }

func (r *ReqRealTimeBars) Encode(e *Encoder, sv int) error {
	c := orZero(r.Contract)
	if err := firstErr(
		unsupported(sv, FeatureRealTimeBars, "  It does not support real time bars."),
		require(sv, FeatureTradingClass, c.TradingClass != "" || c.ConID > 0, r.TickerID,
			"  It does not support conId and tradingClass parameters in reqRealTimeBars."),
	); err != nil {
		return err
	}

	header(e, r.Tag(), 3)
	e.WriteInt(r.TickerID)
	if Supports(sv, FeatureTradingClass) {
		e.WriteInt(c.ConID)
	}
	e.WriteString(c.Symbol)
	e.WriteString(c.SecType)
	e.WriteString(c.Expiry)
	e.WriteFloat(c.Strike)
	e.WriteString(c.Right)
	e.WriteString(c.Multiplier)
	e.WriteString(c.Exchange)
	e.WriteString(c.PrimaryExchange)
	e.WriteString(c.Currency)
	e.WriteString(c.LocalSymbol)
	if Supports(sv, FeatureTradingClass) {
		e.WriteString(c.TradingClass)
	}
	e.WriteInt(r.BarSize)
	e.WriteString(r.WhatToShow)
	e.WriteBool(r.UseRTH)
	if Supports(sv, FeatureLinking) {
		e.WriteTagValues(r.Options)
	}
	return nil
}

type CancelRealTimeBars struct{ TickerID int }

func (r *CancelRealTimeBars) Tag() OutTag    { return OutCancelRealTimeBars }
func (r *CancelRealTimeBars) RequestID() int { return r.TickerID }
func (r *CancelRealTimeBars) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureRealTimeBars, "  It does not support realtime bar data query cancellation."); err != nil {
		return err
	}
	idOnly(e, r.Tag(), r.TickerID)
	return nil
}

// ReqScannerSubscription starts a market scan.
type ReqScannerSubscription struct {
	TickerID     int
	Subscription *ScannerSubscription
	Options      []TagValue
}

func (r *ReqScannerSubscription) Tag() OutTag    { return OutReqScannerSubscription }
func (r *ReqScannerSubscription) RequestID() int { return r.TickerID }

func (r *ReqScannerSubscription) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureScanner, "  It does not support API scanner subscription."); err != nil {
		return err
	}
	s := r.Subscription
	if s == nil {
		s = NewScannerSubscription()
	}

	header(e, r.Tag(), 4)
	e.WriteInt(r.TickerID)
	e.WriteInt(s.NumberOfRows)
	e.WriteString(s.Instrument)
	e.WriteString(s.LocationCode)
	e.WriteString(s.ScanCode)
	e.WriteOptFloat(s.AbovePrice)
	e.WriteOptFloat(s.BelowPrice)
	e.WriteOptInt(s.AboveVolume)
	e.WriteOptFloat(s.MarketCapAbove)
	e.WriteOptFloat(s.MarketCapBelow)
	e.WriteString(s.MoodyRatingAbove)
	e.WriteString(s.MoodyRatingBelow)
	e.WriteString(s.SPRatingAbove)
	e.WriteString(s.SPRatingBelow)
	e.WriteString(s.MaturityDateAbove)
	e.WriteString(s.MaturityDateBelow)
	e.WriteOptFloat(s.CouponRateAbove)
	e.WriteOptFloat(s.CouponRateBelow)
	e.WriteString(s.ExcludeConvertible)
	if Supports(sv, FeatureScannerSettingPairs) {
		e.WriteOptInt(s.AverageOptionVolumeAbove)
		e.WriteString(s.ScannerSettingPairs)
	}
	if Supports(sv, FeatureStockTypeFilter) {
		e.WriteString(s.StockTypeFilter)
	}
	if Supports(sv, FeatureLinking) {
		e.WriteTagValues(r.Options)
	}
	return nil
}

type CancelScannerSubscription struct{ TickerID int }

func (r *CancelScannerSubscription) Tag() OutTag    { return OutCancelScannerSubscription }
func (r *CancelScannerSubscription) RequestID() int { return r.TickerID }
func (r *CancelScannerSubscription) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureScanner, "  It does not support API scanner subscription."); err != nil {
		return err
	}
	idOnly(e, r.Tag(), r.TickerID)
	return nil
}

type ReqScannerParameters struct{}

func (r *ReqScannerParameters) Tag() OutTag    { return OutReqScannerParameters }
func (r *ReqScannerParameters) RequestID() int { return NoValidID }
func (r *ReqScannerParameters) Encode(e *Encoder, sv int) error {
	if err := unsupported(sv, FeatureScanner, "  It does not support API scanner subscription."); err != nil {
		return err
	}
	header(e, r.Tag(), 1)
	return nil
}

// ReqFundamentalData requests a Reuters report ("ReportSnapshot",
// "ReportsFinSummary", "RESC").
type ReqFundamentalData struct {
	ReqID      int
	Contract   *Contract
	ReportType string
}

func (r *ReqFundamentalData) Tag() OutTag    { return OutReqFundamentalData }
func (r *ReqFundamentalData) RequestID() int { return r.ReqID }

func (r *ReqFundamentalData) Encode(e *Encoder, sv int) error {
	c := orZero(r.Contract)
	if err := firstErr(
		require(sv, FeatureFundamentalData, true, r.ReqID,
			"  It does not support fundamental data requests."),
		require(sv, FeatureTradingClass, c.ConID > 0, r.ReqID,
			"  It does not support conId parameter in reqFundamentalData."),
	); err != nil {
		return err
	}

	header(e, r.Tag(), 2)
	e.WriteInt(r.ReqID)
	if Supports(sv, FeatureTradingClass) {
		e.WriteInt(c.ConID)
	}
	e.WriteString(c.Symbol)
	e.WriteString(c.SecType)
	e.WriteString(c.Exchange)
	e.WriteString(c.PrimaryExchange)
	e.WriteString(c.Currency)
	e.WriteString(c.LocalSymbol)
	e.WriteString(r.ReportType)
	return nil
}

type CancelFundamentalData struct{ ReqID int }

func (r *CancelFundamentalData) Tag() OutTag    { return OutCancelFundamentalData }
func (r *CancelFundamentalData) RequestID() int { return r.ReqID }
func (r *CancelFundamentalData) Encode(e *Encoder, sv int) error {
	if err := require(sv, FeatureFundamentalData, true, r.ReqID,
		"  It does not support fundamental data requests."); err != nil {
		return err
	}
	idOnly(e, r.Tag(), r.ReqID)
	return nil
}

// CalcImpliedVolatility asks the server's option model for the volatility
// implied by OptionPrice.
type CalcImpliedVolatility struct {
	ReqID       int
	Contract    *Contract
	OptionPrice float64
	UnderPrice  float64
}

func (r *CalcImpliedVolatility) Tag() OutTag    { return OutReqCalcImpliedVolat }
func (r *CalcImpliedVolatility) RequestID() int { return r.ReqID }

func (r *CalcImpliedVolatility) Encode(e *Encoder, sv int) error {
	c := orZero(r.Contract)
	if err := firstErr(
		require(sv, FeatureReqCalcImpliedVolat, true, r.ReqID,
			"  It does not support calculate implied volatility requests."),
		require(sv, FeatureTradingClass, c.TradingClass != "", r.ReqID,
			"  It does not support tradingClass parameter in calculateImpliedVolatility."),
	); err != nil {
		return err
	}
	header(e, r.Tag(), 2)
	e.WriteInt(r.ReqID)
	writeCalcContract(e, c, sv)
	e.WriteFloat(r.OptionPrice)
	e.WriteFloat(r.UnderPrice)
	return nil
}

// CalcOptionPrice asks the server's option model for the price implied by
// Volatility.
type CalcOptionPrice struct {
	ReqID      int
	Contract   *Contract
	Volatility float64
	UnderPrice float64
}

func (r *CalcOptionPrice) Tag() OutTag    { return OutReqCalcOptionPrice }
func (r *CalcOptionPrice) RequestID() int { return r.ReqID }

func (r *CalcOptionPrice) Encode(e *Encoder, sv int) error {
	c := orZero(r.Contract)
	if err := firstErr(
		require(sv, FeatureReqCalcOptionPrice, true, r.ReqID,
			"  It does not support calculate option price requests."),
		require(sv, FeatureTradingClass, c.TradingClass != "", r.ReqID,
			"  It does not support tradingClass parameter in calculateOptionPrice."),
	); err != nil {
		return err
	}
	header(e, r.Tag(), 2)
	e.WriteInt(r.ReqID)
	writeCalcContract(e, c, sv)
	e.WriteFloat(r.Volatility)
	e.WriteFloat(r.UnderPrice)
	return nil
}

func writeCalcContract(e *Encoder, c *Contract, sv int) {
	e.WriteInt(c.ConID)
	e.WriteString(c.Symbol)
	e.WriteString(c.SecType)
	e.WriteString(c.Expiry)
	e.WriteFloat(c.Strike)
	e.WriteString(c.Right)
	e.WriteString(c.Multiplier)
	e.WriteString(c.Exchange)
	e.WriteString(c.PrimaryExchange)
	e.WriteString(c.Currency)
	e.WriteString(c.LocalSymbol)
	if Supports(sv, FeatureTradingClass) {
		e.WriteString(c.TradingClass)
	}
}

type CancelCalcImpliedVolatility struct{ ReqID int }

func (r *CancelCalcImpliedVolatility) Tag() OutTag    { return OutCancelCalcImpliedVolat }
func (r *CancelCalcImpliedVolatility) RequestID() int { return r.ReqID }
func (r *CancelCalcImpliedVolatility) Encode(e *Encoder, sv int) error {
	if err := require(sv, FeatureCancelCalcImpliedVolat, true, r.ReqID,
		"  It does not support calculate implied volatility cancellation."); err != nil {
		return err
	}
	idOnly(e, r.Tag(), r.ReqID)
	return nil
}

type CancelCalcOptionPrice struct{ ReqID int }

func (r *CancelCalcOptionPrice) Tag() OutTag    { return OutCancelCalcOptionPrice }
func (r *CancelCalcOptionPrice) RequestID() int { return r.ReqID }
func (r *CancelCalcOptionPrice) Encode(e *Encoder, sv int) error {
	if err := require(sv, FeatureCancelCalcOptionPrice, true, r.ReqID,
		"  It does not support calculate option price cancellation."); err != nil {
		return err
	}
	idOnly(e, r.Tag(), r.ReqID)
	return nil
}
