package protocol

import (
	"fmt"
	"strings"
)

// Client protocol limits.
const (
	// ClientVersion is the highest protocol version this library speaks.
	ClientVersion = 63

	// MinServerVersion is the oldest server version accepted at handshake.
	MinServerVersion = 38
)

// GateKind distinguishes how a gate is evaluated.
type GateKind uint8

const (
	// GateServerMin holds when the negotiated server version is >= Version.
	GateServerMin GateKind = iota
	// GateMessageMin holds when the message's own version is >= Version.
	GateMessageMin
	// GateServerExact holds only when the server version equals Version.
	GateServerExact
)

// String returns the string representation of the gate kind.
func (k GateKind) String() string {
	switch k {
	case GateServerMin:
		return "ServerMin"
	case GateMessageMin:
		return "MessageMin"
	case GateServerExact:
		return "ServerExact"
	default:
		return "Unknown"
	}
}

// Gate is a single version requirement.
type Gate struct {
	Kind    GateKind
	Version int
}

// Feature names an optional field or capability.
type Feature uint16

// Server capabilities. Consulted by the builder and, where the wire changed
// independently of a message's own version, by the decoder.
const (
	FeatureLocalSymbol Feature = iota + 1
	FeatureContractDetails
	FeatureOrderParentID
	FeatureOrderBlock
	FeatureMarketDepth
	FeatureOrderHidden
	FeatureComboLegs
	FeatureAccountCode
	FeatureDiscretionaryAmt
	FeatureGoodAfterTime
	FeatureGoodTillDate
	FeatureFinancialAdvisor
	FeaturePrimaryExchange
	FeatureMultiplier
	FeatureHistoricalData
	FeatureHistoricalFormatDate
	FeatureShortSaleSlot
	FeatureMarketDepthRows
	FeatureOrderExtended
	FeatureServerTime
	FeatureExerciseOptions
	FeatureOverridePercentage
	FeatureScanner
	FeatureScannerSettingPairs
	FeatureVolatilityOrders
	FeatureStockTypeFilter
	FeatureDeltaNeutralOrderType
	FeatureTrailStopPrice
	FeatureGenericTicks
	FeatureCurrentTime
	FeatureRealTimeBars
	FeatureScaleOrders
	FeatureSnapshotMktData
	FeatureSShortComboLegs
	FeatureWhatIfOrders
	FeatureContractConID
	FeaturePTAOrders
	FeatureFundamentalData
	FeatureUnderComp
	FeatureContractDataChain
	FeatureScaleOrders2
	FeatureAlgoOrders
	FeatureExecutionDataChain
	FeatureNotHeld
	FeatureSecIDType
	FeaturePlaceOrderConID
	FeatureReqMktDataConID
	FeatureReqCalcImpliedVolat
	FeatureReqCalcOptionPrice
	FeatureCancelCalcImpliedVolat
	FeatureCancelCalcOptionPrice
	FeatureSShortXOld
	FeatureSShortX
	FeatureReqGlobalCancel
	FeatureHedgeOrders
	FeatureReqMarketDataType
	FeatureOptOutSmartRouting
	FeatureSmartComboRoutingParams
	FeatureDeltaNeutralConID
	FeatureScaleOrders3
	FeatureOrderComboLegsPrice
	FeatureTrailingPercent
	FeatureDeltaNeutralOpenClose
	FeatureAcctSummary
	FeatureTradingClass
	FeatureScaleTable
	FeatureLinking
	FeatureAlgoID
	FeatureIncludeExpired
	FeatureCancelHistoricalData
	FeatureClientID

	// Single server versions that laid fields out differently.
	QuirkVolStockRange
	QuirkStrayExemptCode
	QuirkPortfolioPrimaryExch
)

// Inbound message-version gates, named after the message they belong to.
const (
	MsgTickPriceSize Feature = iota + 200
	MsgTickPriceAutoExecute
	MsgTickOptionGreeks
	MsgOrderStatusPermID
	MsgOrderStatusParentID
	MsgOrderStatusLastFill
	MsgOrderStatusClientID
	MsgOrderStatusWhyHeld
	MsgAcctValueAccount
	MsgPortfolioLocalSymbol
	MsgPortfolioCost
	MsgPortfolioAccount
	MsgPortfolioConID
	MsgPortfolioMultiplier
	MsgPortfolioTradingClass
	MsgErrMsgCode
	MsgOpenOrderLocalSymbol
	MsgOpenOrderClientID
	MsgOpenOrderPermID
	MsgOpenOrderGoodAfterTime
	MsgOpenOrderSharesAlloc
	MsgOpenOrderFA
	MsgOpenOrderGoodTillDate
	MsgOpenOrderExtended
	MsgOpenOrderParentID
	MsgOpenOrderVolatility
	MsgOpenOrderDeltaNeutralAux
	MsgOpenOrderTrailStop
	MsgOpenOrderBasisPoints
	MsgOpenOrderScale
	MsgOpenOrderWhatIf
	MsgOpenOrderConID
	MsgOpenOrderOutsideRth
	MsgOpenOrderClearing
	MsgOpenOrderScaleSubs
	MsgOpenOrderAlgo
	MsgOpenOrderNotHeld
	MsgOpenOrderExemptCode
	MsgOpenOrderHedge
	MsgOpenOrderOptOutSmart
	MsgOpenOrderSmartCombo
	MsgOpenOrderDeltaNeutralConID
	MsgOpenOrderScale3
	MsgOpenOrderComboLegs
	MsgOpenOrderMaxAux
	MsgOpenOrderTrailingPercent
	MsgOpenOrderDeltaNeutralClose
	MsgOpenOrderTradingClass
	MsgScannerLegs
	MsgScannerConID
	MsgContractReqID
	MsgContractMagnifier
	MsgContractUnderConID
	MsgContractLongName
	MsgContractMonth
	MsgContractSecIDList
	MsgContractEvRule
	MsgBondNextOption
	MsgBondLongName
	MsgBondSecIDList
	MsgBondEvRule
	MsgExecPermID
	MsgExecClientID
	MsgExecLiquidation
	MsgExecConID
	MsgExecCumQty
	MsgExecReqID
	MsgExecOrderRef
	MsgExecEvRule
	MsgExecTradingClass
	MsgHistoricalRange
	MsgHistoricalBarCount
	MsgPositionTradingClass
	MsgPositionAvgCost
	MsgExecMultiplier
	MsgOpenOrderUnderComp
)

var gates = map[Feature]Gate{
	FeatureLocalSymbol:             {GateServerMin, 2},
	FeatureContractDetails:         {GateServerMin, 4},
	FeatureOrderParentID:           {GateServerMin, 4},
	FeatureOrderBlock:              {GateServerMin, 5},
	FeatureMarketDepth:             {GateServerMin, 6},
	FeatureOrderHidden:             {GateServerMin, 7},
	FeatureComboLegs:               {GateServerMin, 8},
	FeatureAccountCode:             {GateServerMin, 9},
	FeatureDiscretionaryAmt:        {GateServerMin, 10},
	FeatureGoodAfterTime:           {GateServerMin, 11},
	FeatureGoodTillDate:            {GateServerMin, 12},
	FeatureFinancialAdvisor:        {GateServerMin, 13},
	FeaturePrimaryExchange:         {GateServerMin, 14},
	FeatureMultiplier:              {GateServerMin, 15},
	FeatureHistoricalData:          {GateServerMin, 16},
	FeatureHistoricalFormatDate:    {GateServerMin, 17},
	FeatureShortSaleSlot:           {GateServerMin, 18},
	FeatureMarketDepthRows:         {GateServerMin, 19},
	FeatureOrderExtended:           {GateServerMin, 19},
	FeatureServerTime:              {GateServerMin, 20},
	FeatureExerciseOptions:         {GateServerMin, 21},
	FeatureOverridePercentage:      {GateServerMin, 22},
	FeatureScanner:                 {GateServerMin, 24},
	FeatureScannerSettingPairs:     {GateServerMin, 25},
	FeatureVolatilityOrders:        {GateServerMin, 26},
	FeatureStockTypeFilter:         {GateServerMin, 27},
	FeatureDeltaNeutralOrderType:   {GateServerMin, 28},
	FeatureTrailStopPrice:          {GateServerMin, 30},
	FeatureGenericTicks:            {GateServerMin, 31},
	FeatureCurrentTime:             {GateServerMin, 33},
	FeatureRealTimeBars:            {GateServerMin, 34},
	FeatureScaleOrders:             {GateServerMin, 35},
	FeatureSnapshotMktData:         {GateServerMin, 35},
	FeatureSShortComboLegs:         {GateServerMin, 35},
	FeatureWhatIfOrders:            {GateServerMin, 36},
	FeatureContractConID:           {GateServerMin, 37},
	FeaturePTAOrders:               {GateServerMin, 39},
	FeatureFundamentalData:         {GateServerMin, 40},
	FeatureUnderComp:               {GateServerMin, 40},
	FeatureContractDataChain:       {GateServerMin, 40},
	FeatureScaleOrders2:            {GateServerMin, 40},
	FeatureAlgoOrders:              {GateServerMin, 41},
	FeatureExecutionDataChain:      {GateServerMin, 42},
	FeatureNotHeld:                 {GateServerMin, 44},
	FeatureSecIDType:               {GateServerMin, 45},
	FeaturePlaceOrderConID:         {GateServerMin, 46},
	FeatureReqMktDataConID:         {GateServerMin, 47},
	FeatureReqCalcImpliedVolat:     {GateServerMin, 49},
	FeatureReqCalcOptionPrice:      {GateServerMin, 50},
	FeatureCancelCalcImpliedVolat:  {GateServerMin, 50},
	FeatureCancelCalcOptionPrice:   {GateServerMin, 50},
	FeatureSShortXOld:              {GateServerMin, 51},
	FeatureSShortX:                 {GateServerMin, 52},
	FeatureReqGlobalCancel:         {GateServerMin, 53},
	FeatureHedgeOrders:             {GateServerMin, 54},
	FeatureReqMarketDataType:       {GateServerMin, 55},
	FeatureOptOutSmartRouting:      {GateServerMin, 56},
	FeatureSmartComboRoutingParams: {GateServerMin, 57},
	FeatureDeltaNeutralConID:       {GateServerMin, 58},
	FeatureScaleOrders3:            {GateServerMin, 60},
	FeatureOrderComboLegsPrice:     {GateServerMin, 61},
	FeatureTrailingPercent:         {GateServerMin, 62},
	FeatureDeltaNeutralOpenClose:   {GateServerMin, 66},
	FeatureAcctSummary:             {GateServerMin, 67},
	FeatureTradingClass:            {GateServerMin, 68},
	FeatureScaleTable:              {GateServerMin, 69},
	FeatureLinking:                 {GateServerMin, 70},
	FeatureAlgoID:                  {GateServerMin, 71},
	FeatureIncludeExpired:          {GateServerMin, 31},
	FeatureCancelHistoricalData:    {GateServerMin, 24},
	FeatureClientID:                {GateServerMin, 3},

	QuirkVolStockRange:        {GateServerExact, 26},
	QuirkStrayExemptCode:      {GateServerExact, 51},
	QuirkPortfolioPrimaryExch: {GateServerExact, 39},

	MsgTickPriceSize:        {GateMessageMin, 2},
	MsgTickPriceAutoExecute: {GateMessageMin, 3},
	MsgTickOptionGreeks:     {GateMessageMin, 6},

	MsgOrderStatusPermID:   {GateMessageMin, 2},
	MsgOrderStatusParentID: {GateMessageMin, 3},
	MsgOrderStatusLastFill: {GateMessageMin, 4},
	MsgOrderStatusClientID: {GateMessageMin, 5},
	MsgOrderStatusWhyHeld:  {GateMessageMin, 6},

	MsgAcctValueAccount: {GateMessageMin, 2},

	MsgPortfolioLocalSymbol:  {GateMessageMin, 2},
	MsgPortfolioCost:         {GateMessageMin, 3},
	MsgPortfolioAccount:      {GateMessageMin, 4},
	MsgPortfolioConID:        {GateMessageMin, 6},
	MsgPortfolioMultiplier:   {GateMessageMin, 7},
	MsgPortfolioTradingClass: {GateMessageMin, 8},

	MsgErrMsgCode: {GateMessageMin, 2},

	MsgOpenOrderLocalSymbol:       {GateMessageMin, 2},
	MsgOpenOrderClientID:          {GateMessageMin, 3},
	MsgOpenOrderPermID:            {GateMessageMin, 4},
	MsgOpenOrderGoodAfterTime:     {GateMessageMin, 5},
	MsgOpenOrderSharesAlloc:       {GateMessageMin, 6},
	MsgOpenOrderFA:                {GateMessageMin, 7},
	MsgOpenOrderGoodTillDate:      {GateMessageMin, 8},
	MsgOpenOrderExtended:          {GateMessageMin, 9},
	MsgOpenOrderParentID:          {GateMessageMin, 10},
	MsgOpenOrderVolatility:        {GateMessageMin, 11},
	MsgOpenOrderDeltaNeutralAux:   {GateMessageMin, 12},
	MsgOpenOrderTrailStop:         {GateMessageMin, 13},
	MsgOpenOrderBasisPoints:       {GateMessageMin, 14},
	MsgOpenOrderScale:             {GateMessageMin, 15},
	MsgOpenOrderWhatIf:            {GateMessageMin, 16},
	MsgOpenOrderConID:             {GateMessageMin, 17},
	MsgOpenOrderOutsideRth:        {GateMessageMin, 18},
	MsgOpenOrderClearing:          {GateMessageMin, 19},
	MsgOpenOrderScaleSubs:         {GateMessageMin, 20},
	MsgOpenOrderAlgo:              {GateMessageMin, 21},
	MsgOpenOrderNotHeld:           {GateMessageMin, 22},
	MsgOpenOrderExemptCode:        {GateMessageMin, 23},
	MsgOpenOrderHedge:             {GateMessageMin, 24},
	MsgOpenOrderOptOutSmart:       {GateMessageMin, 25},
	MsgOpenOrderSmartCombo:        {GateMessageMin, 26},
	MsgOpenOrderDeltaNeutralConID: {GateMessageMin, 27},
	MsgOpenOrderScale3:            {GateMessageMin, 28},
	MsgOpenOrderComboLegs:         {GateMessageMin, 29},
	MsgOpenOrderMaxAux:            {GateMessageMin, 30},
	MsgOpenOrderTrailingPercent:   {GateMessageMin, 30},
	MsgOpenOrderDeltaNeutralClose: {GateMessageMin, 31},
	MsgOpenOrderTradingClass:      {GateMessageMin, 32},

	MsgScannerLegs:  {GateMessageMin, 2},
	MsgScannerConID: {GateMessageMin, 3},

	MsgContractReqID:      {GateMessageMin, 3},
	MsgContractMagnifier:  {GateMessageMin, 2},
	MsgContractUnderConID: {GateMessageMin, 4},
	MsgContractLongName:   {GateMessageMin, 5},
	MsgContractMonth:      {GateMessageMin, 6},
	MsgContractSecIDList:  {GateMessageMin, 7},
	MsgContractEvRule:     {GateMessageMin, 8},

	MsgBondNextOption: {GateMessageMin, 2},
	MsgBondLongName:   {GateMessageMin, 4},
	MsgBondSecIDList:  {GateMessageMin, 5},
	MsgBondEvRule:     {GateMessageMin, 6},

	MsgExecPermID:       {GateMessageMin, 2},
	MsgExecClientID:     {GateMessageMin, 3},
	MsgExecLiquidation:  {GateMessageMin, 4},
	MsgExecConID:        {GateMessageMin, 5},
	MsgExecCumQty:       {GateMessageMin, 6},
	MsgExecReqID:        {GateMessageMin, 7},
	MsgExecOrderRef:     {GateMessageMin, 8},
	MsgExecEvRule:       {GateMessageMin, 9},
	MsgExecTradingClass: {GateMessageMin, 10},

	MsgHistoricalRange:    {GateMessageMin, 2},
	MsgHistoricalBarCount: {GateMessageMin, 3},

	MsgPositionTradingClass: {GateMessageMin, 2},
	MsgPositionAvgCost:      {GateMessageMin, 3},

	MsgExecMultiplier:     {GateMessageMin, 9},
	MsgOpenOrderUnderComp: {GateMessageMin, 20},
}

// GateOf returns the gate registered for f.
func GateOf(f Feature) (Gate, bool) {
	g, ok := gates[f]
	return g, ok
}

// Versions is the pair of version numbers a gate can be evaluated against.
type Versions struct {
	Server  int
	Message int
}

// Has reports whether the feature's gate is open for v.
// An unregistered feature is never open.
func (v Versions) Has(f Feature) bool {
	g, ok := gates[f]
	if !ok {
		return false
	}
	switch g.Kind {
	case GateServerMin:
		return v.Server >= g.Version
	case GateMessageMin:
		return v.Message >= g.Version
	case GateServerExact:
		return v.Server == g.Version
	}
	return false
}

// Supports reports whether a server at serverVersion has feature f.
func Supports(serverVersion int, f Feature) bool {
	return Versions{Server: serverVersion}.Has(f)
}

// CapabilityError reports a request that uses a feature the negotiated
// server does not support. Nothing is written when it is returned.
type CapabilityError struct {
	// ID is the request the failure is reported against, or NoValidID when
	// the whole message is unsupported.
	ID      int
	Feature Feature
	Message string
}

func (e *CapabilityError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = "request not supported"
	}
	if g, ok := gates[e.Feature]; ok {
		return fmt.Sprintf("protocol: server version below %d: %s", g.Version, msg)
	}
	return "protocol: " + msg
}

// unsupported returns a CapabilityError for a message the server cannot
// accept at all.
func unsupported(serverVersion int, f Feature, msg string) error {
	if !Supports(serverVersion, f) {
		return &CapabilityError{ID: NoValidID, Feature: f, Message: msg}
	}
	return nil
}

// require returns a CapabilityError when used is true and f is closed.
func require(serverVersion int, f Feature, used bool, id int, msg string) error {
	if used && !Supports(serverVersion, f) {
		return &CapabilityError{ID: id, Feature: f, Message: msg}
	}
	return nil
}
