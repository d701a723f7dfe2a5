package bridge

import "github.com/vango-dev/ibtws/pkg/protocol"

var _ protocol.Sink = (*Hub)(nil)

// Event types are the Sink method names in lower camel case.

func (h *Hub) TickPrice(ev protocol.TickPrice)                           { h.Publish("tickPrice", ev) }
func (h *Hub) TickSize(ev protocol.TickSize)                             { h.Publish("tickSize", ev) }
func (h *Hub) TickOptionComputation(ev protocol.TickOptionComputation)   { h.Publish("tickOptionComputation", ev) }
func (h *Hub) TickGeneric(ev protocol.TickGeneric)                       { h.Publish("tickGeneric", ev) }
func (h *Hub) TickString(ev protocol.TickString)                         { h.Publish("tickString", ev) }
func (h *Hub) TickEFP(ev protocol.TickEFP)                               { h.Publish("tickEFP", ev) }
func (h *Hub) TickSnapshotEnd(ev protocol.TickSnapshotEnd)               { h.Publish("tickSnapshotEnd", ev) }
func (h *Hub) MarketDataType(ev protocol.MarketDataType)                 { h.Publish("marketDataType", ev) }
func (h *Hub) OrderStatus(ev protocol.OrderStatus)                       { h.Publish("orderStatus", ev) }
func (h *Hub) OpenOrder(ev protocol.OpenOrder)                           { h.Publish("openOrder", ev) }
func (h *Hub) OpenOrderEnd()                                             { h.Publish("openOrderEnd", nil) }
func (h *Hub) NextValidID(ev protocol.NextValidID)                       { h.Publish("nextValidID", ev) }
func (h *Hub) AccountValue(ev protocol.AccountValue)                     { h.Publish("accountValue", ev) }
func (h *Hub) PortfolioValue(ev protocol.PortfolioValue)                 { h.Publish("portfolioValue", ev) }
func (h *Hub) AccountUpdateTime(ev protocol.AccountUpdateTime)           { h.Publish("accountUpdateTime", ev) }
func (h *Hub) AccountDownloadEnd(ev protocol.AccountDownloadEnd)         { h.Publish("accountDownloadEnd", ev) }
func (h *Hub) ManagedAccounts(ev protocol.ManagedAccounts)               { h.Publish("managedAccounts", ev) }
func (h *Hub) Position(ev protocol.Position)                             { h.Publish("position", ev) }
func (h *Hub) PositionEnd()                                              { h.Publish("positionEnd", nil) }
func (h *Hub) AccountSummary(ev protocol.AccountSummary)                 { h.Publish("accountSummary", ev) }
func (h *Hub) AccountSummaryEnd(ev protocol.AccountSummaryEnd)           { h.Publish("accountSummaryEnd", ev) }
func (h *Hub) ContractData(ev protocol.ContractData)                     { h.Publish("contractData", ev) }
func (h *Hub) BondContractData(ev protocol.ContractData)                 { h.Publish("bondContractData", ev) }
func (h *Hub) ContractDataEnd(ev protocol.ContractDataEnd)               { h.Publish("contractDataEnd", ev) }
func (h *Hub) ExecutionData(ev protocol.ExecutionData)                   { h.Publish("executionData", ev) }
func (h *Hub) ExecutionDataEnd(ev protocol.ExecutionDataEnd)             { h.Publish("executionDataEnd", ev) }
func (h *Hub) CommissionReport(ev protocol.CommissionReport)             { h.Publish("commissionReport", ev) }
func (h *Hub) MarketDepth(ev protocol.MarketDepth)                       { h.Publish("marketDepth", ev) }
func (h *Hub) MarketDepthL2(ev protocol.MarketDepth)                     { h.Publish("marketDepthL2", ev) }
func (h *Hub) NewsBulletin(ev protocol.NewsBulletin)                     { h.Publish("newsBulletin", ev) }
func (h *Hub) ReceiveFA(ev protocol.ReceiveFA)                           { h.Publish("receiveFA", ev) }
func (h *Hub) HistoricalData(ev protocol.HistoricalBar)                  { h.Publish("historicalData", ev) }
func (h *Hub) HistoricalDataEnd(ev protocol.HistoricalDataEnd)           { h.Publish("historicalDataEnd", ev) }
func (h *Hub) RealTimeBar(ev protocol.RealTimeBar)                       { h.Publish("realTimeBar", ev) }
func (h *Hub) ScannerParameters(ev protocol.ScannerParameters)           { h.Publish("scannerParameters", ev) }
func (h *Hub) ScannerData(ev protocol.ScannerData)                       { h.Publish("scannerData", ev) }
func (h *Hub) ScannerDataEnd(ev protocol.ScannerDataEnd)                 { h.Publish("scannerDataEnd", ev) }
func (h *Hub) CurrentTime(ev protocol.CurrentTime)                       { h.Publish("currentTime", ev) }
func (h *Hub) FundamentalData(ev protocol.FundamentalData)               { h.Publish("fundamentalData", ev) }
func (h *Hub) DeltaNeutralValidation(ev protocol.DeltaNeutralValidation) { h.Publish("deltaNeutralValidation", ev) }
func (h *Hub) VerifyMessageAPI(ev protocol.VerifyMessageAPI)             { h.Publish("verifyMessageAPI", ev) }
func (h *Hub) VerifyCompleted(ev protocol.VerifyCompleted)               { h.Publish("verifyCompleted", ev) }
func (h *Hub) DisplayGroupList(ev protocol.DisplayGroupList)             { h.Publish("displayGroupList", ev) }
func (h *Hub) DisplayGroupUpdated(ev protocol.DisplayGroupUpdated)       { h.Publish("displayGroupUpdated", ev) }
func (h *Hub) Error(ev protocol.ErrorMessage)                            { h.Publish("error", ev) }
func (h *Hub) ConnectionClosed()                                         { h.Publish("connectionClosed", nil) }

// ConnectionError is published with the error text, since error values do
// not marshal.
func (h *Hub) ConnectionError(err error) {
	h.Publish("connectionError", map[string]string{"error": err.Error()})
}
