package protocol

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrEndOfStream is returned when the server sends the -1 message id that
// marks an orderly end of the session.
var ErrEndOfStream = errors.New("protocol: end of stream")

// Dispatcher decodes inbound messages and delivers them to a Sink.
type Dispatcher struct {
	dec           *Decoder
	sink          Sink
	serverVersion int
}

// NewDispatcher creates a dispatcher for a session negotiated at
// serverVersion.
func NewDispatcher(dec *Decoder, serverVersion int, sink Sink) *Dispatcher {
	return &Dispatcher{dec: dec, sink: sink, serverVersion: serverVersion}
}

// ServerVersion returns the version the dispatcher decodes for.
func (d *Dispatcher) ServerVersion() int {
	return d.serverVersion
}

// Next reads one message and delivers its events. Events are only
// delivered once the whole message decoded cleanly.
//
// An unknown message id returns ErrUnknownMessage; the stream cannot be
// resynchronized after it.
func (d *Dispatcher) Next() (InTag, error) {
	id, err := d.dec.ReadInt()
	if err != nil {
		return 0, err
	}
	tag := InTag(id)
	if id == -1 {
		return tag, ErrEndOfStream
	}
	decode, ok := decoders[tag]
	if !ok {
		return tag, fmt.Errorf("%w: %d", ErrUnknownMessage, id)
	}
	version, err := d.dec.ReadInt()
	if err != nil {
		return tag, err
	}

	r := &msgReader{d: d.dec, v: Versions{Server: d.serverVersion, Message: version}}
	deliver := decode(r)
	if r.err != nil {
		return tag, fmt.Errorf("decode %s: %w", tag, r.err)
	}
	deliver(d.sink)
	return tag, nil
}

// msgReader wraps a Decoder with a sticky error so that long decode
// routines can read field after field and check once at the end.
type msgReader struct {
	d   *Decoder
	v   Versions
	err error
}

func (r *msgReader) has(f Feature) bool { return r.v.Has(f) }

func (r *msgReader) str() string {
	if r.err != nil {
		return ""
	}
	s, err := r.d.ReadString()
	r.err = err
	return s
}

func (r *msgReader) int() int {
	if r.err != nil {
		return 0
	}
	v, err := r.d.ReadInt()
	r.err = err
	return v
}

func (r *msgReader) int64() int64 {
	if r.err != nil {
		return 0
	}
	v, err := r.d.ReadInt64()
	r.err = err
	return v
}

func (r *msgReader) float() float64 {
	if r.err != nil {
		return 0
	}
	v, err := r.d.ReadFloat()
	r.err = err
	return v
}

func (r *msgReader) bool() bool {
	if r.err != nil {
		return false
	}
	v, err := r.d.ReadBool()
	r.err = err
	return v
}

func (r *msgReader) optInt() Opt[int] {
	if r.err != nil {
		return Opt[int]{}
	}
	v, err := r.d.ReadOptInt()
	r.err = err
	return v
}

func (r *msgReader) optFloat() Opt[float64] {
	if r.err != nil {
		return Opt[float64]{}
	}
	v, err := r.d.ReadOptFloat()
	r.err = err
	return v
}

// plainOptInt reads an int whose empty token means zero, for fields the
// gateway always populates but which are optional on the order ticket.
func (r *msgReader) plainOptInt() Opt[int] {
	v := r.int()
	if isLegacyUnset(v) {
		return Opt[int]{}
	}
	return Some(v)
}

func (r *msgReader) plainOptFloat() Opt[float64] {
	v := r.float()
	if isLegacyUnset(v) {
		return Opt[float64]{}
	}
	return Some(v)
}

// exemptCode reads an exempt code, where -1 means none.
func (r *msgReader) exemptCode() Opt[int] {
	v := r.int()
	if v == -1 {
		return Opt[int]{}
	}
	return Some(v)
}

// count reads the element count of a repeated group.
func (r *msgReader) count() int {
	n := r.int()
	if r.err != nil {
		return 0
	}
	n, r.err = checkCount(n)
	return n
}

func (r *msgReader) tagValues() []TagValue {
	n := r.count()
	if n == 0 {
		return nil
	}
	out := make([]TagValue, 0, min(n, maxPrealloc))
	for i := 0; i < n && r.err == nil; i++ {
		out = append(out, TagValue{Tag: r.str(), Value: r.str()})
	}
	return out
}

type decodeFunc func(r *msgReader) func(Sink)

var decoders = map[InTag]decodeFunc{
	InTickPrice:              decodeTickPrice,
	InTickSize:               decodeTickSize,
	InOrderStatus:            decodeOrderStatus,
	InErrMsg:                 decodeErrMsg,
	InOpenOrder:              decodeOpenOrder,
	InAcctValue:              decodeAcctValue,
	InPortfolioValue:         decodePortfolioValue,
	InAcctUpdateTime:         decodeAcctUpdateTime,
	InNextValidID:            decodeNextValidID,
	InContractData:           decodeContractData,
	InExecutionData:          decodeExecutionData,
	InMarketDepth:            decodeMarketDepth,
	InMarketDepthL2:          decodeMarketDepthL2,
	InNewsBulletins:          decodeNewsBulletin,
	InManagedAccts:           decodeManagedAccts,
	InReceiveFA:              decodeReceiveFA,
	InHistoricalData:         decodeHistoricalData,
	InBondContractData:       decodeBondContractData,
	InScannerParameters:      decodeScannerParameters,
	InScannerData:            decodeScannerData,
	InTickOptionComputation:  decodeTickOptionComputation,
	InTickGeneric:            decodeTickGeneric,
	InTickString:             decodeTickString,
	InTickEFP:                decodeTickEFP,
	InCurrentTime:            decodeCurrentTime,
	InRealTimeBars:           decodeRealTimeBars,
	InFundamentalData:        decodeFundamentalData,
	InContractDataEnd:        decodeContractDataEnd,
	InOpenOrderEnd:           decodeOpenOrderEnd,
	InAcctDownloadEnd:        decodeAcctDownloadEnd,
	InExecutionDataEnd:       decodeExecutionDataEnd,
	InDeltaNeutralValidation: decodeDeltaNeutralValidation,
	InTickSnapshotEnd:        decodeTickSnapshotEnd,
	InMarketDataType:         decodeMarketDataType,
	InCommissionReport:       decodeCommissionReport,
	InPosition:               decodePosition,
	InPositionEnd:            decodePositionEnd,
	InAccountSummary:         decodeAccountSummary,
	InAccountSummaryEnd:      decodeAccountSummaryEnd,
	InVerifyMessageAPI:       decodeVerifyMessageAPI,
	InVerifyCompleted:        decodeVerifyCompleted,
	InDisplayGroupList:       decodeDisplayGroupList,
	InDisplayGroupUpdated:    decodeDisplayGroupUpdated,
}

func decodeTickPrice(r *msgReader) func(Sink) {
	ev := TickPrice{TickerID: r.int(), Field: r.int(), Price: r.float()}
	size := 0
	if r.has(MsgTickPriceSize) {
		size = r.int()
	}
	if r.has(MsgTickPriceAutoExecute) {
		ev.CanAutoExecute = r.int() != 0
	}
	sizeField := -1
	if r.has(MsgTickPriceSize) {
		switch ev.Field {
		case TickBid:
			sizeField = TickBidSize
		case TickAsk:
			sizeField = TickAskSize
		case TickLast:
			sizeField = TickLastSize
		}
	}
	return func(s Sink) {
		s.TickPrice(ev)
		if sizeField >= 0 {
			s.TickSize(TickSize{TickerID: ev.TickerID, Field: sizeField, Size: size})
		}
	}
}

func decodeTickSize(r *msgReader) func(Sink) {
	ev := TickSize{TickerID: r.int(), Field: r.int(), Size: r.int()}
	return func(s Sink) { s.TickSize(ev) }
}

// outside returns an unset value when ok is false.
func outside(v float64, ok bool) Opt[float64] {
	if !ok {
		return Opt[float64]{}
	}
	return Some(v)
}

func decodeTickOptionComputation(r *msgReader) func(Sink) {
	ev := TickOptionComputation{TickerID: r.int(), Field: r.int()}
	v := r.float()
	ev.ImpliedVol = outside(v, v >= 0)
	v = r.float()
	ev.Delta = outside(v, math.Abs(v) <= 1)
	if r.has(MsgTickOptionGreeks) || ev.Field == TickModelOption {
		v = r.float()
		ev.OptPrice = outside(v, v >= 0)
		v = r.float()
		ev.PVDividend = outside(v, v >= 0)
	}
	if r.has(MsgTickOptionGreeks) {
		v = r.float()
		ev.Gamma = outside(v, math.Abs(v) <= 1)
		v = r.float()
		ev.Vega = outside(v, math.Abs(v) <= 1)
		v = r.float()
		ev.Theta = outside(v, math.Abs(v) <= 1)
		v = r.float()
		ev.UndPrice = outside(v, v >= 0)
	}
	return func(s Sink) { s.TickOptionComputation(ev) }
}

func decodeTickGeneric(r *msgReader) func(Sink) {
	ev := TickGeneric{TickerID: r.int(), Field: r.int(), Value: r.float()}
	return func(s Sink) { s.TickGeneric(ev) }
}

func decodeTickString(r *msgReader) func(Sink) {
	ev := TickString{TickerID: r.int(), Field: r.int(), Value: r.str()}
	return func(s Sink) { s.TickString(ev) }
}

func decodeTickEFP(r *msgReader) func(Sink) {
	ev := TickEFP{
		TickerID:             r.int(),
		Field:                r.int(),
		BasisPoints:          r.float(),
		FormattedBasisPoints: r.str(),
		ImpliedFuturesPrice:  r.float(),
		HoldDays:             r.int(),
		FutureExpiry:         r.str(),
		DividendImpact:       r.float(),
		DividendsToExpiry:    r.float(),
	}
	return func(s Sink) { s.TickEFP(ev) }
}

func decodeOrderStatus(r *msgReader) func(Sink) {
	ev := OrderStatus{
		OrderID:      r.int(),
		Status:       r.str(),
		Filled:       r.int(),
		Remaining:    r.int(),
		AvgFillPrice: r.float(),
	}
	if r.has(MsgOrderStatusPermID) {
		ev.PermID = r.int()
	}
	if r.has(MsgOrderStatusParentID) {
		ev.ParentID = r.int()
	}
	if r.has(MsgOrderStatusLastFill) {
		ev.LastFillPrice = r.float()
	}
	if r.has(MsgOrderStatusClientID) {
		ev.ClientID = r.int()
	}
	if r.has(MsgOrderStatusWhyHeld) {
		ev.WhyHeld = r.str()
	}
	return func(s Sink) { s.OrderStatus(ev) }
}

func decodeErrMsg(r *msgReader) func(Sink) {
	ev := ErrorMessage{ID: NoValidID}
	if r.has(MsgErrMsgCode) {
		ev.ID = r.int()
		ev.Code = r.int()
	}
	ev.Message = r.str()
	return func(s Sink) { s.Error(ev) }
}

func decodeAcctValue(r *msgReader) func(Sink) {
	ev := AccountValue{Key: r.str(), Value: r.str(), Currency: r.str()}
	if r.has(MsgAcctValueAccount) {
		ev.Account = r.str()
	}
	return func(s Sink) { s.AccountValue(ev) }
}

func decodePortfolioValue(r *msgReader) func(Sink) {
	var ev PortfolioValue
	c := &ev.Contract
	if r.has(MsgPortfolioConID) {
		c.ConID = r.int()
	}
	c.Symbol = r.str()
	c.SecType = r.str()
	c.Expiry = r.str()
	c.Strike = r.float()
	c.Right = r.str()
	if r.has(MsgPortfolioMultiplier) {
		c.Multiplier = r.str()
		c.PrimaryExchange = r.str()
	}
	c.Currency = r.str()
	if r.has(MsgPortfolioLocalSymbol) {
		c.LocalSymbol = r.str()
	}
	if r.has(MsgPortfolioTradingClass) {
		c.TradingClass = r.str()
	}
	ev.Position = r.int()
	ev.MarketPrice = r.float()
	ev.MarketValue = r.float()
	if r.has(MsgPortfolioCost) {
		ev.AverageCost = r.float()
		ev.UnrealizedPNL = r.float()
		ev.RealizedPNL = r.float()
	}
	if r.has(MsgPortfolioAccount) {
		ev.Account = r.str()
	}
	if r.v.Message == 6 && r.has(QuirkPortfolioPrimaryExch) {
		c.PrimaryExchange = r.str()
	}
	return func(s Sink) { s.PortfolioValue(ev) }
}

func decodeAcctUpdateTime(r *msgReader) func(Sink) {
	ev := AccountUpdateTime{Timestamp: r.str()}
	return func(s Sink) { s.AccountUpdateTime(ev) }
}

func decodeNextValidID(r *msgReader) func(Sink) {
	ev := NextValidID{OrderID: r.int()}
	return func(s Sink) { s.NextValidID(ev) }
}

func decodeContractData(r *msgReader) func(Sink) {
	ev := ContractData{ReqID: NoValidID}
	if r.has(MsgContractReqID) {
		ev.ReqID = r.int()
	}
	d := &ev.Details
	c := &d.Summary
	c.Symbol = r.str()
	c.SecType = r.str()
	c.Expiry = r.str()
	c.Strike = r.float()
	c.Right = r.str()
	c.Exchange = r.str()
	c.Currency = r.str()
	c.LocalSymbol = r.str()
	d.MarketName = r.str()
	c.TradingClass = r.str()
	c.ConID = r.int()
	d.MinTick = r.float()
	c.Multiplier = r.str()
	d.OrderTypes = r.str()
	d.ValidExchanges = r.str()
	if r.has(MsgContractMagnifier) {
		d.PriceMagnifier = r.int()
	}
	if r.has(MsgContractUnderConID) {
		d.UnderConID = r.int()
	}
	if r.has(MsgContractLongName) {
		d.LongName = r.str()
		c.PrimaryExchange = r.str()
	}
	if r.has(MsgContractMonth) {
		d.ContractMonth = r.str()
		d.Industry = r.str()
		d.Category = r.str()
		d.Subcategory = r.str()
		d.TimeZoneID = r.str()
		d.TradingHours = r.str()
		d.LiquidHours = r.str()
	}
	if r.has(MsgContractEvRule) {
		d.EvRule = r.str()
		d.EvMultiplier = r.float()
	}
	if r.has(MsgContractSecIDList) {
		d.SecIDList = r.tagValues()
	}
	return func(s Sink) { s.ContractData(ev) }
}

func decodeBondContractData(r *msgReader) func(Sink) {
	ev := ContractData{ReqID: NoValidID}
	if r.has(MsgContractReqID) {
		ev.ReqID = r.int()
	}
	d := &ev.Details
	c := &d.Summary
	c.Symbol = r.str()
	c.SecType = r.str()
	d.Cusip = r.str()
	d.Coupon = r.float()
	d.Maturity = r.str()
	d.IssueDate = r.str()
	d.Ratings = r.str()
	d.BondType = r.str()
	d.CouponType = r.str()
	d.Convertible = r.bool()
	d.Callable = r.bool()
	d.Putable = r.bool()
	d.DescAppend = r.str()
	c.Exchange = r.str()
	c.Currency = r.str()
	d.MarketName = r.str()
	c.TradingClass = r.str()
	c.ConID = r.int()
	d.MinTick = r.float()
	d.OrderTypes = r.str()
	d.ValidExchanges = r.str()
	if r.has(MsgBondNextOption) {
		d.NextOptionDate = r.str()
		d.NextOptionType = r.str()
		d.NextOptionPartial = r.bool()
		d.Notes = r.str()
	}
	if r.has(MsgBondLongName) {
		d.LongName = r.str()
	}
	if r.has(MsgBondEvRule) {
		d.EvRule = r.str()
		d.EvMultiplier = r.float()
	}
	if r.has(MsgBondSecIDList) {
		d.SecIDList = r.tagValues()
	}
	return func(s Sink) { s.BondContractData(ev) }
}

func decodeExecutionData(r *msgReader) func(Sink) {
	ev := ExecutionData{ReqID: NoValidID}
	if r.has(MsgExecReqID) {
		ev.ReqID = r.int()
	}
	x := &ev.Execution
	x.OrderID = r.int()
	c := &ev.Contract
	if r.has(MsgExecConID) {
		c.ConID = r.int()
	}
	c.Symbol = r.str()
	c.SecType = r.str()
	c.Expiry = r.str()
	c.Strike = r.float()
	c.Right = r.str()
	if r.has(MsgExecMultiplier) {
		c.Multiplier = r.str()
	}
	c.Exchange = r.str()
	c.Currency = r.str()
	c.LocalSymbol = r.str()
	if r.has(MsgExecTradingClass) {
		c.TradingClass = r.str()
	}
	x.ExecID = r.str()
	x.Time = r.str()
	x.AcctNumber = r.str()
	x.Exchange = r.str()
	x.Side = r.str()
	x.Shares = r.int()
	x.Price = r.float()
	if r.has(MsgExecPermID) {
		x.PermID = r.int()
	}
	if r.has(MsgExecClientID) {
		x.ClientID = r.int()
	}
	if r.has(MsgExecLiquidation) {
		x.Liquidation = r.int()
	}
	if r.has(MsgExecCumQty) {
		x.CumQty = r.int()
		x.AvgPrice = r.float()
	}
	if r.has(MsgExecOrderRef) {
		x.OrderRef = r.str()
	}
	if r.has(MsgExecEvRule) {
		x.EvRule = r.str()
		x.EvMultiplier = r.float()
	}
	return func(s Sink) { s.ExecutionData(ev) }
}

func decodeMarketDepth(r *msgReader) func(Sink) {
	ev := MarketDepth{
		TickerID:  r.int(),
		Position:  r.int(),
		Operation: r.int(),
		Side:      r.int(),
		Price:     r.float(),
		Size:      r.int(),
	}
	return func(s Sink) { s.MarketDepth(ev) }
}

func decodeMarketDepthL2(r *msgReader) func(Sink) {
	ev := MarketDepth{
		TickerID:    r.int(),
		Position:    r.int(),
		MarketMaker: r.str(),
		Operation:   r.int(),
		Side:        r.int(),
		Price:       r.float(),
		Size:        r.int(),
	}
	return func(s Sink) { s.MarketDepthL2(ev) }
}

func decodeNewsBulletin(r *msgReader) func(Sink) {
	ev := NewsBulletin{MsgID: r.int(), MsgType: r.int(), Message: r.str(), Exchange: r.str()}
	return func(s Sink) { s.NewsBulletin(ev) }
}

func decodeManagedAccts(r *msgReader) func(Sink) {
	ev := ManagedAccounts{Accounts: r.str()}
	return func(s Sink) { s.ManagedAccounts(ev) }
}

func decodeReceiveFA(r *msgReader) func(Sink) {
	ev := ReceiveFA{DataType: r.int(), XML: r.str()}
	return func(s Sink) { s.ReceiveFA(ev) }
}

func decodeHistoricalData(r *msgReader) func(Sink) {
	end := HistoricalDataEnd{ReqID: r.int()}
	if r.has(MsgHistoricalRange) {
		end.Start = r.str()
		end.End = r.str()
	}
	n := r.count()
	var bars []HistoricalBar
	for i := 0; i < n && r.err == nil; i++ {
		b := Bar{
			Date:   r.str(),
			Open:   r.float(),
			High:   r.float(),
			Low:    r.float(),
			Close:  r.float(),
			Volume: r.int(),
			WAP:    r.float(),
		}
		b.HasGaps = strings.EqualFold(r.str(), "true")
		b.BarCount = -1
		if r.has(MsgHistoricalBarCount) {
			b.BarCount = r.int()
		}
		bars = append(bars, HistoricalBar{ReqID: end.ReqID, Bar: b})
	}
	return func(s Sink) {
		for _, b := range bars {
			s.HistoricalData(b)
		}
		s.HistoricalDataEnd(end)
	}
}

func decodeScannerParameters(r *msgReader) func(Sink) {
	ev := ScannerParameters{XML: r.str()}
	return func(s Sink) { s.ScannerParameters(ev) }
}

func decodeScannerData(r *msgReader) func(Sink) {
	reqID := r.int()
	n := r.count()
	var rows []ScannerData
	for i := 0; i < n && r.err == nil; i++ {
		row := ScannerData{ReqID: reqID, Rank: r.int()}
		d := &row.Details
		c := &d.Summary
		if r.has(MsgScannerConID) {
			c.ConID = r.int()
		}
		c.Symbol = r.str()
		c.SecType = r.str()
		c.Expiry = r.str()
		c.Strike = r.float()
		c.Right = r.str()
		c.Exchange = r.str()
		c.Currency = r.str()
		c.LocalSymbol = r.str()
		d.MarketName = r.str()
		c.TradingClass = r.str()
		row.Distance = r.str()
		row.Benchmark = r.str()
		row.Projection = r.str()
		if r.has(MsgScannerLegs) {
			row.Legs = r.str()
		}
		rows = append(rows, row)
	}
	return func(s Sink) {
		for _, row := range rows {
			s.ScannerData(row)
		}
		s.ScannerDataEnd(ScannerDataEnd{ReqID: reqID})
	}
}

func decodeCurrentTime(r *msgReader) func(Sink) {
	ev := CurrentTime{Time: r.int64()}
	return func(s Sink) { s.CurrentTime(ev) }
}

func decodeRealTimeBars(r *msgReader) func(Sink) {
	ev := RealTimeBar{
		ReqID:  r.int(),
		Time:   r.int64(),
		Open:   r.float(),
		High:   r.float(),
		Low:    r.float(),
		Close:  r.float(),
		Volume: r.int64(),
		WAP:    r.float(),
		Count:  r.int(),
	}
	return func(s Sink) { s.RealTimeBar(ev) }
}

func decodeFundamentalData(r *msgReader) func(Sink) {
	ev := FundamentalData{ReqID: r.int(), Data: r.str()}
	return func(s Sink) { s.FundamentalData(ev) }
}

func decodeContractDataEnd(r *msgReader) func(Sink) {
	ev := ContractDataEnd{ReqID: r.int()}
	return func(s Sink) { s.ContractDataEnd(ev) }
}

func decodeOpenOrderEnd(r *msgReader) func(Sink) {
	return func(s Sink) { s.OpenOrderEnd() }
}

func decodeAcctDownloadEnd(r *msgReader) func(Sink) {
	ev := AccountDownloadEnd{Account: r.str()}
	return func(s Sink) { s.AccountDownloadEnd(ev) }
}

func decodeExecutionDataEnd(r *msgReader) func(Sink) {
	ev := ExecutionDataEnd{ReqID: r.int()}
	return func(s Sink) { s.ExecutionDataEnd(ev) }
}

func decodeDeltaNeutralValidation(r *msgReader) func(Sink) {
	ev := DeltaNeutralValidation{ReqID: r.int()}
	ev.UnderComp = UnderComp{ConID: r.int(), Delta: r.float(), Price: r.float()}
	return func(s Sink) { s.DeltaNeutralValidation(ev) }
}

func decodeTickSnapshotEnd(r *msgReader) func(Sink) {
	ev := TickSnapshotEnd{ReqID: r.int()}
	return func(s Sink) { s.TickSnapshotEnd(ev) }
}

func decodeMarketDataType(r *msgReader) func(Sink) {
	ev := MarketDataType{ReqID: r.int(), Type: r.int()}
	return func(s Sink) { s.MarketDataType(ev) }
}

func decodeCommissionReport(r *msgReader) func(Sink) {
	ev := CommissionReport{
		ExecID:              r.str(),
		Commission:          r.float(),
		Currency:            r.str(),
		RealizedPNL:         r.optFloat(),
		Yield:               r.optFloat(),
		YieldRedemptionDate: r.int(),
	}
	return func(s Sink) { s.CommissionReport(ev) }
}

func decodePosition(r *msgReader) func(Sink) {
	ev := Position{Account: r.str()}
	c := &ev.Contract
	c.ConID = r.int()
	c.Symbol = r.str()
	c.SecType = r.str()
	c.Expiry = r.str()
	c.Strike = r.float()
	c.Right = r.str()
	c.Multiplier = r.str()
	c.Exchange = r.str()
	c.Currency = r.str()
	c.LocalSymbol = r.str()
	if r.has(MsgPositionTradingClass) {
		c.TradingClass = r.str()
	}
	ev.Position = r.int()
	if r.has(MsgPositionAvgCost) {
		ev.AvgCost = r.float()
	}
	return func(s Sink) { s.Position(ev) }
}

func decodePositionEnd(r *msgReader) func(Sink) {
	return func(s Sink) { s.PositionEnd() }
}

func decodeAccountSummary(r *msgReader) func(Sink) {
	ev := AccountSummary{
		ReqID:    r.int(),
		Account:  r.str(),
		Tag:      r.str(),
		Value:    r.str(),
		Currency: r.str(),
	}
	return func(s Sink) { s.AccountSummary(ev) }
}

func decodeAccountSummaryEnd(r *msgReader) func(Sink) {
	ev := AccountSummaryEnd{ReqID: r.int()}
	return func(s Sink) { s.AccountSummaryEnd(ev) }
}

func decodeVerifyMessageAPI(r *msgReader) func(Sink) {
	ev := VerifyMessageAPI{Data: r.str()}
	return func(s Sink) { s.VerifyMessageAPI(ev) }
}

func decodeVerifyCompleted(r *msgReader) func(Sink) {
	ev := VerifyCompleted{Successful: r.str() == "true", ErrorText: r.str()}
	return func(s Sink) { s.VerifyCompleted(ev) }
}

func decodeDisplayGroupList(r *msgReader) func(Sink) {
	ev := DisplayGroupList{ReqID: r.int(), Groups: r.str()}
	return func(s Sink) { s.DisplayGroupList(ev) }
}

func decodeDisplayGroupUpdated(r *msgReader) func(Sink) {
	ev := DisplayGroupUpdated{ReqID: r.int(), ContractInfo: r.str()}
	return func(s Sink) { s.DisplayGroupUpdated(ev) }
}
