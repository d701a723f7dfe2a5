package protocol

import "strings"

// PlaceOrder submits a new order or modifies the open order with the same id.
type PlaceOrder struct {
	OrderID  int
	Contract *Contract
	Order    *Order
}

func (r *PlaceOrder) Tag() OutTag    { return OutPlaceOrder }
func (r *PlaceOrder) RequestID() int { return r.OrderID }

func (r *PlaceOrder) orderOrDefault() *Order {
	if r.Order == nil {
		return NewOrder()
	}
	return r.Order
}

func (r *PlaceOrder) validate(sv int) error {
	c, o, id := orZero(r.Contract), r.orderOrDefault(), r.OrderID

	var legSShort, legExempt, legPrice bool
	for _, l := range c.ComboLegs {
		legSShort = legSShort || l.ShortSaleSlot != 0 || l.DesignatedLocation != ""
		legExempt = legExempt || l.ExemptCode.IsSet()
	}
	if c.IsBag() {
		for _, l := range o.OrderComboLegs {
			legPrice = legPrice || l.Price.IsSet()
		}
	}
	scale3 := false
	if inc, ok := o.ScalePriceIncrement.Get(); ok && inc > 0 {
		scale3 = o.ScalePriceAdjustValue.IsSet() ||
			o.ScalePriceAdjustInterval.IsSet() ||
			o.ScaleProfitOffset.IsSet() ||
			o.ScaleAutoReset ||
			o.ScaleInitPosition.IsSet() ||
			o.ScaleInitFillQty.IsSet() ||
			o.ScaleRandomPercent
	}

	return firstErr(
		require(sv, FeatureScaleOrders, o.ScaleInitLevelSize.IsSet() || o.ScalePriceIncrement.IsSet(), id,
			"  It does not support Scale orders."),
		require(sv, FeatureSShortComboLegs, legSShort, id,
			"  It does not support SSHORT flag for combo legs."),
		require(sv, FeatureWhatIfOrders, o.WhatIf, id,
			"  It does not support what-if orders."),
		require(sv, FeatureUnderComp, c.UnderComp != nil, id,
			"  It does not support delta-neutral orders."),
		require(sv, FeatureScaleOrders2, o.ScaleSubsLevelSize.IsSet(), id,
			"  It does not support Subsequent Level Size for Scale orders."),
		require(sv, FeatureAlgoOrders, o.AlgoStrategy != "", id,
			"  It does not support algo orders."),
		require(sv, FeatureNotHeld, o.NotHeld, id,
			"  It does not support notHeld parameter."),
		require(sv, FeatureSecIDType, c.SecIDType != "" || c.SecID != "", id,
			"  It does not support secIdType and secId parameters."),
		require(sv, FeaturePlaceOrderConID, c.ConID > 0, id,
			"  It does not support conId parameter."),
		require(sv, FeatureSShortX, o.ExemptCode.IsSet() || legExempt, id,
			"  It does not support exemptCode parameter."),
		require(sv, FeatureHedgeOrders, o.HedgeType != "", id,
			"  It does not support hedge orders."),
		require(sv, FeatureOptOutSmartRouting, o.OptOutSmartRouting, id,
			"  It does not support optOutSmartRouting parameter."),
		require(sv, FeatureDeltaNeutralConID,
			o.DeltaNeutralConID > 0 ||
				o.DeltaNeutralSettlingFirm != "" ||
				o.DeltaNeutralClearingAccount != "" ||
				o.DeltaNeutralClearingIntent != "", id,
			"  It does not support deltaNeutral parameters: ConId, SettlingFirm, ClearingAccount, ClearingIntent"),
		require(sv, FeatureDeltaNeutralOpenClose,
			o.DeltaNeutralOpenClose != "" ||
				o.DeltaNeutralShortSale ||
				o.DeltaNeutralShortSaleSlot > 0 ||
				o.DeltaNeutralDesignatedLocation != "", id,
			"  It does not support deltaNeutral parameters: OpenClose, ShortSale, ShortSaleSlot, DesignatedLocation"),
		require(sv, FeatureScaleOrders3, scale3, id,
			"  It does not support Scale order parameters: PriceAdjustValue, PriceAdjustInterval, "+
				"ProfitOffset, AutoReset, InitPosition, InitFillQty and RandomPercent"),
		require(sv, FeatureOrderComboLegsPrice, legPrice, id,
			"  It does not support per-leg prices for order combo legs."),
		require(sv, FeatureTrailingPercent, o.TrailingPercent.IsSet(), id,
			"  It does not support trailing percent parameter"),
		require(sv, FeatureTradingClass, c.TradingClass != "", id,
			"  It does not support tradingClass parameters in placeOrder."),
		require(sv, FeatureScaleTable, o.ScaleTable != "" || o.ActiveStartTime != "" || o.ActiveStopTime != "", id,
			"  It does not support scaleTable, activeStartTime and activeStopTime parameters."),
	)
}

// Advisories reports an algo id the server cannot accept. The order is
// still sent; the field is simply left off the wire.
func (r *PlaceOrder) Advisories(sv int) []*CapabilityError {
	o := r.orderOrDefault()
	if o.AlgoID != "" && !Supports(sv, FeatureAlgoID) {
		return []*CapabilityError{{
			ID:      r.OrderID,
			Feature: FeatureAlgoID,
			Message: " It does not support algoId parameter",
		}}
	}
	return nil
}

func (r *PlaceOrder) Encode(e *Encoder, sv int) error {
	if err := r.validate(sv); err != nil {
		return err
	}
	c, o := orZero(r.Contract), r.orderOrDefault()
	bag := c.IsBag()

	version := 43
	if !Supports(sv, FeatureNotHeld) {
		version = 27
	}
	header(e, r.Tag(), version)
	e.WriteInt(r.OrderID)

	if Supports(sv, FeaturePlaceOrderConID) {
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
	if Supports(sv, FeatureSecIDType) {
		e.WriteString(c.SecIDType)
		e.WriteString(c.SecID)
	}

	e.WriteString(o.Action)
	e.WriteInt(o.TotalQuantity)
	e.WriteString(o.OrderType)
	// Older servers cannot parse an empty price.
	if Supports(sv, FeatureOrderComboLegsPrice) {
		e.WriteOptFloat(o.LmtPrice)
	} else {
		e.WriteFloat(o.LmtPrice.Or(0))
	}
	if Supports(sv, FeatureTrailingPercent) {
		e.WriteOptFloat(o.AuxPrice)
	} else {
		e.WriteFloat(o.AuxPrice.Or(0))
	}

	e.WriteString(o.TIF)
	e.WriteString(o.OCAGroup)
	e.WriteString(o.Account)
	e.WriteString(o.OpenClose)
	e.WriteInt(o.Origin)
	e.WriteString(o.OrderRef)
	e.WriteBool(o.Transmit)
	if Supports(sv, FeatureOrderParentID) {
		e.WriteInt(o.ParentID)
	}
	if Supports(sv, FeatureOrderBlock) {
		e.WriteBool(o.BlockOrder)
		e.WriteBool(o.SweepToFill)
		e.WriteInt(o.DisplaySize)
		e.WriteInt(o.TriggerMethod)
		e.WriteBool(o.OutsideRTH)
	}
	if Supports(sv, FeatureOrderHidden) {
		e.WriteBool(o.Hidden)
	}

	if Supports(sv, FeatureComboLegs) && bag {
		e.WriteInt(len(c.ComboLegs))
		for _, l := range c.ComboLegs {
			e.WriteInt(l.ConID)
			e.WriteInt(l.Ratio)
			e.WriteString(l.Action)
			e.WriteString(l.Exchange)
			e.WriteInt(l.OpenClose)
			if Supports(sv, FeatureSShortComboLegs) {
				e.WriteInt(l.ShortSaleSlot)
				e.WriteString(l.DesignatedLocation)
			}
			if Supports(sv, FeatureSShortXOld) {
				e.WriteInt(l.ExemptCode.Or(-1))
			}
		}
	}
	if Supports(sv, FeatureOrderComboLegsPrice) && bag {
		e.WriteInt(len(o.OrderComboLegs))
		for _, l := range o.OrderComboLegs {
			e.WriteOptFloat(l.Price)
		}
	}
	if Supports(sv, FeatureSmartComboRoutingParams) && bag {
		e.WriteTagValueList(o.SmartComboRoutingParams)
	}

	if Supports(sv, FeatureAccountCode) {
		e.WriteString("") // shares allocation, retired
	}
	if Supports(sv, FeatureDiscretionaryAmt) {
		e.WriteFloat(o.DiscretionaryAmt)
	}
	if Supports(sv, FeatureGoodAfterTime) {
		e.WriteString(o.GoodAfterTime)
	}
	if Supports(sv, FeatureGoodTillDate) {
		e.WriteString(o.GoodTillDate)
	}
	if Supports(sv, FeatureFinancialAdvisor) {
		e.WriteString(o.FAGroup)
		e.WriteString(o.FAMethod)
		e.WriteString(o.FAPercentage)
		e.WriteString(o.FAProfile)
	}
	if Supports(sv, FeatureShortSaleSlot) {
		e.WriteInt(o.ShortSaleSlot)
		e.WriteString(o.DesignatedLocation)
	}
	if Supports(sv, FeatureSShortXOld) {
		e.WriteInt(o.ExemptCode.Or(-1))
	}

	isVol := o.OrderType == "VOL"
	volRange := Supports(sv, QuirkVolStockRange) && isVol
	if Supports(sv, FeatureOrderExtended) {
		e.WriteInt(o.OCAType)
		e.WriteString(o.Rule80A)
		e.WriteString(o.SettlingFirm)
		e.WriteBool(o.AllOrNone)
		e.WriteOptInt(o.MinQty)
		e.WriteOptFloat(o.PercentOffset)
		e.WriteBool(o.ETradeOnly)
		e.WriteBool(o.FirmQuoteOnly)
		e.WriteOptFloat(o.NBBOPriceCap)
		e.WriteInt(o.AuctionStrategy)
		e.WriteOptFloat(o.StartingPrice)
		e.WriteOptFloat(o.StockRefPrice)
		e.WriteOptFloat(o.Delta)
		// Server 26 carried the volatility order range later in the message.
		if volRange {
			e.WriteOptFloat(None[float64]())
			e.WriteOptFloat(None[float64]())
		} else {
			e.WriteOptFloat(o.StockRangeLower)
			e.WriteOptFloat(o.StockRangeUpper)
		}
	}
	if Supports(sv, FeatureOverridePercentage) {
		e.WriteBool(o.OverridePercentageConstraints)
	}

	if Supports(sv, FeatureVolatilityOrders) {
		e.WriteOptFloat(o.Volatility)
		e.WriteOptInt(o.VolatilityType)
		if !Supports(sv, FeatureDeltaNeutralOrderType) {
			e.WriteBool(strings.EqualFold(o.DeltaNeutralOrderType, "MKT"))
		} else {
			e.WriteString(o.DeltaNeutralOrderType)
			e.WriteOptFloat(o.DeltaNeutralAuxPrice)
			if Supports(sv, FeatureDeltaNeutralConID) && o.DeltaNeutralOrderType != "" {
				e.WriteInt(o.DeltaNeutralConID)
				e.WriteString(o.DeltaNeutralSettlingFirm)
				e.WriteString(o.DeltaNeutralClearingAccount)
				e.WriteString(o.DeltaNeutralClearingIntent)
			}
			if Supports(sv, FeatureDeltaNeutralOpenClose) && o.DeltaNeutralOrderType != "" {
				e.WriteString(o.DeltaNeutralOpenClose)
				e.WriteBool(o.DeltaNeutralShortSale)
				e.WriteInt(o.DeltaNeutralShortSaleSlot)
				e.WriteString(o.DeltaNeutralDesignatedLocation)
			}
		}
		e.WriteInt(o.ContinuousUpdate)
		if Supports(sv, QuirkVolStockRange) {
			if isVol {
				e.WriteOptFloat(o.StockRangeLower)
				e.WriteOptFloat(o.StockRangeUpper)
			} else {
				e.WriteOptFloat(None[float64]())
				e.WriteOptFloat(None[float64]())
			}
		}
		e.WriteOptInt(o.ReferencePriceType)
	}

	if Supports(sv, FeatureTrailStopPrice) {
		e.WriteOptFloat(o.TrailStopPrice)
	}
	if Supports(sv, FeatureTrailingPercent) {
		e.WriteOptFloat(o.TrailingPercent)
	}

	if Supports(sv, FeatureScaleOrders) {
		if Supports(sv, FeatureScaleOrders2) {
			e.WriteOptInt(o.ScaleInitLevelSize)
			e.WriteOptInt(o.ScaleSubsLevelSize)
		} else {
			e.WriteString("")
			e.WriteOptInt(o.ScaleInitLevelSize)
		}
		e.WriteOptFloat(o.ScalePriceIncrement)
	}
	if inc, ok := o.ScalePriceIncrement.Get(); ok && inc > 0 && Supports(sv, FeatureScaleOrders3) {
		e.WriteOptFloat(o.ScalePriceAdjustValue)
		e.WriteOptInt(o.ScalePriceAdjustInterval)
		e.WriteOptFloat(o.ScaleProfitOffset)
		e.WriteBool(o.ScaleAutoReset)
		e.WriteOptInt(o.ScaleInitPosition)
		e.WriteOptInt(o.ScaleInitFillQty)
		e.WriteBool(o.ScaleRandomPercent)
	}
	if Supports(sv, FeatureScaleTable) {
		e.WriteString(o.ScaleTable)
		e.WriteString(o.ActiveStartTime)
		e.WriteString(o.ActiveStopTime)
	}

	if Supports(sv, FeatureHedgeOrders) {
		e.WriteString(o.HedgeType)
		if o.HedgeType != "" {
			e.WriteString(o.HedgeParam)
		}
	}
	if Supports(sv, FeatureOptOutSmartRouting) {
		e.WriteBool(o.OptOutSmartRouting)
	}
	if Supports(sv, FeaturePTAOrders) {
		e.WriteString(o.ClearingAccount)
		e.WriteString(o.ClearingIntent)
	}
	if Supports(sv, FeatureNotHeld) {
		e.WriteBool(o.NotHeld)
	}
	if Supports(sv, FeatureUnderComp) {
		writeUnderComp(e, c.UnderComp)
	}
	if Supports(sv, FeatureAlgoOrders) {
		e.WriteString(o.AlgoStrategy)
		if o.AlgoStrategy != "" {
			e.WriteTagValueList(o.AlgoParams)
		}
	}
	if Supports(sv, FeatureAlgoID) {
		e.WriteString(o.AlgoID)
	}
	if Supports(sv, FeatureWhatIfOrders) {
		e.WriteBool(o.WhatIf)
	}
	if Supports(sv, FeatureLinking) {
		e.WriteTagValues(o.OrderMiscOptions)
	}
	return nil
}

// ExerciseOptions exercises (Action 1) or lapses (Action 2) an option
// position.
type ExerciseOptions struct {
	TickerID int
	Contract *Contract
	Action   int
	Quantity int
	Account  string
	Override int
}

func (r *ExerciseOptions) Tag() OutTag    { return OutExerciseOptions }
func (r *ExerciseOptions) RequestID() int { return r.TickerID }

func (r *ExerciseOptions) Encode(e *Encoder, sv int) error {
	c := orZero(r.Contract)
	if err := firstErr(
		unsupported(sv, FeatureExerciseOptions, "  It does not support options exercise from the API."),
		require(sv, FeatureTradingClass, c.TradingClass != "" || c.ConID > 0, r.TickerID,
			"  It does not support conId and tradingClass parameters in exerciseOptions."),
	); err != nil {
		return err
	}

	header(e, r.Tag(), 2)
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
	e.WriteString(c.Currency)
	e.WriteString(c.LocalSymbol)
	if Supports(sv, FeatureTradingClass) {
		e.WriteString(c.TradingClass)
	}
	e.WriteInt(r.Action)
	e.WriteInt(r.Quantity)
	e.WriteString(r.Account)
	e.WriteInt(r.Override)
	return nil
}
