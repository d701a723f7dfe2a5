package protocol

// decodeOpenOrder reads an OPEN_ORDER message. The layout grew over more
// than thirty message versions; gates are checked in wire order.
func decodeOpenOrder(r *msgReader) func(Sink) {
	o := Order{}
	o.OrderID = r.int()

	var c Contract
	if r.has(MsgOpenOrderConID) {
		c.ConID = r.int()
	}
	c.Symbol = r.str()
	c.SecType = r.str()
	c.Expiry = r.str()
	c.Strike = r.float()
	c.Right = r.str()
	if r.has(MsgOpenOrderTradingClass) {
		c.Multiplier = r.str()
	}
	c.Exchange = r.str()
	c.Currency = r.str()
	if r.has(MsgOpenOrderLocalSymbol) {
		c.LocalSymbol = r.str()
	}
	if r.has(MsgOpenOrderTradingClass) {
		c.TradingClass = r.str()
	}

	o.Action = r.str()
	o.TotalQuantity = r.int()
	o.OrderType = r.str()
	if r.has(MsgOpenOrderComboLegs) {
		o.LmtPrice = r.optFloat()
	} else {
		o.LmtPrice = r.plainOptFloat()
	}
	if r.has(MsgOpenOrderMaxAux) {
		o.AuxPrice = r.optFloat()
	} else {
		o.AuxPrice = r.plainOptFloat()
	}
	o.TIF = r.str()
	o.OCAGroup = r.str()
	o.Account = r.str()
	o.OpenClose = r.str()
	o.Origin = r.int()
	o.OrderRef = r.str()

	if r.has(MsgOpenOrderClientID) {
		o.ClientID = r.int()
	}
	if r.has(MsgOpenOrderPermID) {
		o.PermID = r.int()
		// Before version 18 this slot held the retired ignoreRth flag.
		outsideRTH := r.bool()
		if r.has(MsgOpenOrderOutsideRth) {
			o.OutsideRTH = outsideRTH
		}
		o.Hidden = r.int() == 1
		o.DiscretionaryAmt = r.float()
	}
	if r.has(MsgOpenOrderGoodAfterTime) {
		o.GoodAfterTime = r.str()
	}
	if r.has(MsgOpenOrderSharesAlloc) {
		r.str() // shares allocation, no longer used
	}
	if r.has(MsgOpenOrderFA) {
		o.FAGroup = r.str()
		o.FAMethod = r.str()
		o.FAPercentage = r.str()
		o.FAProfile = r.str()
	}
	if r.has(MsgOpenOrderGoodTillDate) {
		o.GoodTillDate = r.str()
	}
	if r.has(MsgOpenOrderExtended) {
		decodeOpenOrderExtended(r, &o)
	}
	if r.has(MsgOpenOrderParentID) {
		o.ParentID = r.int()
		o.TriggerMethod = r.int()
	}
	if r.has(MsgOpenOrderVolatility) {
		decodeOpenOrderVolatility(r, &o)
	}
	if r.has(MsgOpenOrderTrailStop) {
		o.TrailStopPrice = r.optFloat()
	}
	if r.has(MsgOpenOrderTrailingPercent) {
		o.TrailingPercent = r.optFloat()
	}
	if r.has(MsgOpenOrderBasisPoints) {
		o.BasisPoints = r.optFloat()
		o.BasisPointsType = r.optInt()
		c.ComboLegsDescription = r.str()
	}
	if r.has(MsgOpenOrderComboLegs) {
		if n := r.count(); n > 0 {
			for i := 0; i < n && r.err == nil; i++ {
				c.ComboLegs = append(c.ComboLegs, ComboLeg{
					ConID:              r.int(),
					Ratio:              r.int(),
					Action:             r.str(),
					Exchange:           r.str(),
					OpenClose:          r.int(),
					ShortSaleSlot:      r.int(),
					DesignatedLocation: r.str(),
					ExemptCode:         r.exemptCode(),
				})
			}
		}
		if n := r.count(); n > 0 {
			for i := 0; i < n && r.err == nil; i++ {
				o.OrderComboLegs = append(o.OrderComboLegs, OrderComboLeg{Price: r.optFloat()})
			}
		}
	}
	if r.has(MsgOpenOrderSmartCombo) {
		o.SmartComboRoutingParams = r.tagValues()
	}
	if r.has(MsgOpenOrderScale) {
		if r.has(MsgOpenOrderScaleSubs) {
			o.ScaleInitLevelSize = r.optInt()
			o.ScaleSubsLevelSize = r.optInt()
		} else {
			r.optInt() // number of components, no longer used
			o.ScaleInitLevelSize = r.optInt()
		}
		o.ScalePriceIncrement = r.optFloat()
	}
	if inc, ok := o.ScalePriceIncrement.Get(); ok && inc > 0 && r.has(MsgOpenOrderScale3) {
		o.ScalePriceAdjustValue = r.optFloat()
		o.ScalePriceAdjustInterval = r.optInt()
		o.ScaleProfitOffset = r.optFloat()
		o.ScaleAutoReset = r.bool()
		o.ScaleInitPosition = r.optInt()
		o.ScaleInitFillQty = r.optInt()
		o.ScaleRandomPercent = r.bool()
	}
	if r.has(MsgOpenOrderHedge) {
		o.HedgeType = r.str()
		if o.HedgeType != "" {
			o.HedgeParam = r.str()
		}
	}
	if r.has(MsgOpenOrderOptOutSmart) {
		o.OptOutSmartRouting = r.bool()
	}
	if r.has(MsgOpenOrderClearing) {
		o.ClearingAccount = r.str()
		o.ClearingIntent = r.str()
	}
	if r.has(MsgOpenOrderNotHeld) {
		o.NotHeld = r.bool()
	}
	if r.has(MsgOpenOrderUnderComp) && r.bool() {
		c.UnderComp = &UnderComp{ConID: r.int(), Delta: r.float(), Price: r.float()}
	}
	if r.has(MsgOpenOrderAlgo) {
		o.AlgoStrategy = r.str()
		if o.AlgoStrategy != "" {
			o.AlgoParams = r.tagValues()
		}
	}

	var st OrderState
	if r.has(MsgOpenOrderWhatIf) {
		o.WhatIf = r.bool()
		st.Status = r.str()
		st.InitMargin = r.str()
		st.MaintMargin = r.str()
		st.EquityWithLoan = r.str()
		st.Commission = r.optFloat()
		st.MinCommission = r.optFloat()
		st.MaxCommission = r.optFloat()
		st.CommissionCurrency = r.str()
		st.WarningText = r.str()
	}

	ev := OpenOrder{OrderID: o.OrderID, Contract: c, Order: o, State: st}
	return func(s Sink) { s.OpenOrder(ev) }
}

func decodeOpenOrderExtended(r *msgReader, o *Order) {
	o.Rule80A = r.str()
	o.PercentOffset = r.optFloat()
	o.SettlingFirm = r.str()
	o.ShortSaleSlot = r.int()
	o.DesignatedLocation = r.str()
	switch {
	case r.has(QuirkStrayExemptCode):
		r.int()
	case r.has(MsgOpenOrderExemptCode):
		o.ExemptCode = r.exemptCode()
	}
	o.AuctionStrategy = r.int()
	o.StartingPrice = r.optFloat()
	o.StockRefPrice = r.optFloat()
	o.Delta = r.optFloat()
	o.StockRangeLower = r.optFloat()
	o.StockRangeUpper = r.optFloat()
	o.DisplaySize = r.int()
	if !r.has(MsgOpenOrderOutsideRth) {
		r.bool() // rthOnly, retired
	}
	o.BlockOrder = r.bool()
	o.SweepToFill = r.bool()
	o.AllOrNone = r.bool()
	o.MinQty = r.optInt()
	o.OCAType = r.int()
	o.ETradeOnly = r.bool()
	o.FirmQuoteOnly = r.bool()
	o.NBBOPriceCap = r.optFloat()
}

func decodeOpenOrderVolatility(r *msgReader, o *Order) {
	o.Volatility = r.optFloat()
	o.VolatilityType = r.plainOptInt()
	if !r.has(MsgOpenOrderDeltaNeutralAux) {
		if r.int() == 0 {
			o.DeltaNeutralOrderType = "NONE"
		} else {
			o.DeltaNeutralOrderType = "MKT"
		}
	} else {
		o.DeltaNeutralOrderType = r.str()
		o.DeltaNeutralAuxPrice = r.optFloat()
		if r.has(MsgOpenOrderDeltaNeutralConID) && o.DeltaNeutralOrderType != "" {
			o.DeltaNeutralConID = r.int()
			o.DeltaNeutralSettlingFirm = r.str()
			o.DeltaNeutralClearingAccount = r.str()
			o.DeltaNeutralClearingIntent = r.str()
		}
		if r.has(MsgOpenOrderDeltaNeutralClose) && o.DeltaNeutralOrderType != "" {
			o.DeltaNeutralOpenClose = r.str()
			o.DeltaNeutralShortSale = r.bool()
			o.DeltaNeutralShortSaleSlot = r.int()
			o.DeltaNeutralDesignatedLocation = r.str()
		}
	}
	o.ContinuousUpdate = r.int()
	if r.has(QuirkVolStockRange) {
		o.StockRangeLower = r.plainOptFloat()
		o.StockRangeUpper = r.plainOptFloat()
	}
	o.ReferencePriceType = r.plainOptInt()
}
