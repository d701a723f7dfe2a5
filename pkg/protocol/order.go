package protocol

// Order origins.
const (
	OriginCustomer = 0
	OriginFirm     = 1
)

// Order is an order ticket. Numeric fields the gateway distinguishes from
// zero are Opt values; leave them unset to let the server choose.
type Order struct {
	OrderID  int `json:"orderId"`
	ClientID int `json:"clientId"`
	PermID   int `json:"permId"`

	Action        string       `json:"action"`
	TotalQuantity int          `json:"totalQuantity"`
	OrderType     string       `json:"orderType"`
	LmtPrice      Opt[float64] `json:"lmtPrice"`
	AuxPrice      Opt[float64] `json:"auxPrice"`

	TIF                           string `json:"tif"`
	ActiveStartTime               string `json:"activeStartTime"`
	ActiveStopTime                string `json:"activeStopTime"`
	OCAGroup                      string `json:"ocaGroup"`
	OCAType                       int    `json:"ocaType"`
	OrderRef                      string `json:"orderRef"`
	Transmit                      bool   `json:"transmit"`
	ParentID                      int    `json:"parentId"`
	BlockOrder                    bool   `json:"blockOrder"`
	SweepToFill                   bool   `json:"sweepToFill"`
	DisplaySize                   int    `json:"displaySize"`
	TriggerMethod                 int    `json:"triggerMethod"`
	OutsideRTH                    bool   `json:"outsideRth"`
	Hidden                        bool   `json:"hidden"`
	GoodAfterTime                 string `json:"goodAfterTime"`
	GoodTillDate                  string `json:"goodTillDate"`
	OverridePercentageConstraints bool   `json:"overridePercentageConstraints"`
	Rule80A                       string `json:"rule80A"`
	AllOrNone                     bool   `json:"allOrNone"`

	MinQty          Opt[int]     `json:"minQty"`
	PercentOffset   Opt[float64] `json:"percentOffset"`
	TrailStopPrice  Opt[float64] `json:"trailStopPrice"`
	TrailingPercent Opt[float64] `json:"trailingPercent"`

	// Financial advisor allocation.
	FAGroup      string `json:"faGroup"`
	FAProfile    string `json:"faProfile"`
	FAMethod     string `json:"faMethod"`
	FAPercentage string `json:"faPercentage"`

	// Institutional fields.
	OpenClose          string   `json:"openClose"`
	Origin             int      `json:"origin"`
	ShortSaleSlot      int      `json:"shortSaleSlot"`
	DesignatedLocation string   `json:"designatedLocation"`
	ExemptCode         Opt[int] `json:"exemptCode"`

	// SMART routing.
	DiscretionaryAmt   float64      `json:"discretionaryAmt"`
	ETradeOnly         bool         `json:"eTradeOnly"`
	FirmQuoteOnly      bool         `json:"firmQuoteOnly"`
	NBBOPriceCap       Opt[float64] `json:"nbboPriceCap"`
	OptOutSmartRouting bool         `json:"optOutSmartRouting"`

	// BOX and pegged-to-stock orders.
	AuctionStrategy int          `json:"auctionStrategy"`
	StartingPrice   Opt[float64] `json:"startingPrice"`
	StockRefPrice   Opt[float64] `json:"stockRefPrice"`
	Delta           Opt[float64] `json:"delta"`
	StockRangeLower Opt[float64] `json:"stockRangeLower"`
	StockRangeUpper Opt[float64] `json:"stockRangeUpper"`

	// Volatility orders.
	Volatility                     Opt[float64] `json:"volatility"`
	VolatilityType                 Opt[int]     `json:"volatilityType"`
	ContinuousUpdate               int          `json:"continuousUpdate"`
	ReferencePriceType             Opt[int]     `json:"referencePriceType"`
	DeltaNeutralOrderType          string       `json:"deltaNeutralOrderType"`
	DeltaNeutralAuxPrice           Opt[float64] `json:"deltaNeutralAuxPrice"`
	DeltaNeutralConID              int          `json:"deltaNeutralConId"`
	DeltaNeutralSettlingFirm       string       `json:"deltaNeutralSettlingFirm"`
	DeltaNeutralClearingAccount    string       `json:"deltaNeutralClearingAccount"`
	DeltaNeutralClearingIntent     string       `json:"deltaNeutralClearingIntent"`
	DeltaNeutralOpenClose          string       `json:"deltaNeutralOpenClose"`
	DeltaNeutralShortSale          bool         `json:"deltaNeutralShortSale"`
	DeltaNeutralShortSaleSlot      int          `json:"deltaNeutralShortSaleSlot"`
	DeltaNeutralDesignatedLocation string       `json:"deltaNeutralDesignatedLocation"`

	// Combo orders.
	BasisPoints     Opt[float64] `json:"basisPoints"`
	BasisPointsType Opt[int]     `json:"basisPointsType"`

	// Scale orders.
	ScaleInitLevelSize       Opt[int]     `json:"scaleInitLevelSize"`
	ScaleSubsLevelSize       Opt[int]     `json:"scaleSubsLevelSize"`
	ScalePriceIncrement      Opt[float64] `json:"scalePriceIncrement"`
	ScalePriceAdjustValue    Opt[float64] `json:"scalePriceAdjustValue"`
	ScalePriceAdjustInterval Opt[int]     `json:"scalePriceAdjustInterval"`
	ScaleProfitOffset        Opt[float64] `json:"scaleProfitOffset"`
	ScaleAutoReset           bool         `json:"scaleAutoReset"`
	ScaleInitPosition        Opt[int]     `json:"scaleInitPosition"`
	ScaleInitFillQty         Opt[int]     `json:"scaleInitFillQty"`
	ScaleRandomPercent       bool         `json:"scaleRandomPercent"`
	ScaleTable               string       `json:"scaleTable"`

	// Hedge orders.
	HedgeType  string `json:"hedgeType"`
	HedgeParam string `json:"hedgeParam"`

	// Clearing.
	Account         string `json:"account"`
	SettlingFirm    string `json:"settlingFirm"`
	ClearingAccount string `json:"clearingAccount"`
	ClearingIntent  string `json:"clearingIntent"` // IB, Away, PTA

	AlgoStrategy string     `json:"algoStrategy"`
	AlgoParams   []TagValue `json:"algoParams,omitempty"`
	AlgoID       string     `json:"algoId"`

	WhatIf  bool `json:"whatIf"`
	NotHeld bool `json:"notHeld"`

	SmartComboRoutingParams []TagValue      `json:"smartComboRoutingParams,omitempty"`
	OrderComboLegs          []OrderComboLeg `json:"orderComboLegs,omitempty"`
	OrderMiscOptions        []TagValue      `json:"orderMiscOptions,omitempty"`
}

// NewOrder returns an order with the gateway's defaults: open position,
// customer origin, transmit immediately.
func NewOrder() *Order {
	return &Order{
		OpenClose: "O",
		Origin:    OriginCustomer,
		Transmit:  true,
	}
}

// OrderComboLeg carries a per-leg price for combination orders.
type OrderComboLeg struct {
	Price Opt[float64] `json:"price"`
}

// OrderState is the margin and commission preview attached to open orders.
type OrderState struct {
	Status             string       `json:"status"`
	InitMargin         string       `json:"initMargin"`
	MaintMargin        string       `json:"maintMargin"`
	EquityWithLoan     string       `json:"equityWithLoan"`
	Commission         Opt[float64] `json:"commission"`
	MinCommission      Opt[float64] `json:"minCommission"`
	MaxCommission      Opt[float64] `json:"maxCommission"`
	CommissionCurrency string       `json:"commissionCurrency"`
	WarningText        string       `json:"warningText"`
}
