package client

import (
	clienterr "github.com/vango-dev/ibtws/internal/errors"
	"github.com/vango-dev/ibtws/pkg/protocol"
)

// Market data

// ReqMktData subscribes to top of book data for a contract. genericTicks
// is a comma separated list of generic tick types.
func (c *Client) ReqMktData(tickerID int, contract *protocol.Contract, genericTicks string, snapshot bool, opts []protocol.TagValue) error {
	return c.Send(&protocol.ReqMktData{
		TickerID:     tickerID,
		Contract:     contract,
		GenericTicks: genericTicks,
		Snapshot:     snapshot,
		Options:      opts,
	})
}

func (c *Client) CancelMktData(tickerID int) error {
	return c.Send(&protocol.CancelMktData{TickerID: tickerID})
}

func (c *Client) ReqMktDepth(tickerID int, contract *protocol.Contract, numRows int, opts []protocol.TagValue) error {
	return c.Send(&protocol.ReqMktDepth{TickerID: tickerID, Contract: contract, NumRows: numRows, Options: opts})
}

func (c *Client) CancelMktDepth(tickerID int) error {
	return c.Send(&protocol.CancelMktDepth{TickerID: tickerID})
}

// ReqMarketDataType switches between real time (1) and frozen (2) data.
func (c *Client) ReqMarketDataType(marketDataType int) error {
	return c.Send(&protocol.ReqMarketDataType{Type: marketDataType})
}

// ReqHistoricalData requests bars. Rows arrive through HistoricalData and
// the request completes with HistoricalDataEnd.
func (c *Client) ReqHistoricalData(r *protocol.ReqHistoricalData) error {
	return c.Send(r)
}

func (c *Client) CancelHistoricalData(tickerID int) error {
	return c.Send(&protocol.CancelHistoricalData{TickerID: tickerID})
}

func (c *Client) ReqRealTimeBars(r *protocol.ReqRealTimeBars) error {
	return c.Send(r)
}

func (c *Client) CancelRealTimeBars(tickerID int) error {
	return c.Send(&protocol.CancelRealTimeBars{TickerID: tickerID})
}

func (c *Client) ReqScannerParameters() error {
	return c.Send(&protocol.ReqScannerParameters{})
}

func (c *Client) ReqScannerSubscription(tickerID int, sub *protocol.ScannerSubscription, opts []protocol.TagValue) error {
	return c.Send(&protocol.ReqScannerSubscription{TickerID: tickerID, Subscription: sub, Options: opts})
}

func (c *Client) CancelScannerSubscription(tickerID int) error {
	return c.Send(&protocol.CancelScannerSubscription{TickerID: tickerID})
}

func (c *Client) ReqFundamentalData(reqID int, contract *protocol.Contract, reportType string) error {
	return c.Send(&protocol.ReqFundamentalData{ReqID: reqID, Contract: contract, ReportType: reportType})
}

func (c *Client) CancelFundamentalData(reqID int) error {
	return c.Send(&protocol.CancelFundamentalData{ReqID: reqID})
}

func (c *Client) CalculateImpliedVolatility(reqID int, contract *protocol.Contract, optionPrice, underPrice float64) error {
	return c.Send(&protocol.CalcImpliedVolatility{ReqID: reqID, Contract: contract, OptionPrice: optionPrice, UnderPrice: underPrice})
}

func (c *Client) CancelCalculateImpliedVolatility(reqID int) error {
	return c.Send(&protocol.CancelCalcImpliedVolatility{ReqID: reqID})
}

func (c *Client) CalculateOptionPrice(reqID int, contract *protocol.Contract, volatility, underPrice float64) error {
	return c.Send(&protocol.CalcOptionPrice{ReqID: reqID, Contract: contract, Volatility: volatility, UnderPrice: underPrice})
}

func (c *Client) CancelCalculateOptionPrice(reqID int) error {
	return c.Send(&protocol.CancelCalcOptionPrice{ReqID: reqID})
}

// Orders

// PlaceOrder submits or modifies an order. A nil order is sent with the
// defaults of protocol.NewOrder.
func (c *Client) PlaceOrder(orderID int, contract *protocol.Contract, order *protocol.Order) error {
	return c.Send(&protocol.PlaceOrder{OrderID: orderID, Contract: contract, Order: order})
}

func (c *Client) CancelOrder(orderID int) error {
	return c.Send(&protocol.CancelOrder{OrderID: orderID})
}

func (c *Client) ReqOpenOrders() error {
	return c.Send(&protocol.ReqOpenOrders{})
}

func (c *Client) ReqAllOpenOrders() error {
	return c.Send(&protocol.ReqAllOpenOrders{})
}

func (c *Client) ReqAutoOpenOrders(autoBind bool) error {
	return c.Send(&protocol.ReqAutoOpenOrders{AutoBind: autoBind})
}

func (c *Client) ReqGlobalCancel() error {
	return c.Send(&protocol.ReqGlobalCancel{})
}

// ReqIDs asks for the next valid order id, delivered through NextValidID.
func (c *Client) ReqIDs(numIDs int) error {
	return c.Send(&protocol.ReqIDs{NumIDs: numIDs})
}

func (c *Client) ExerciseOptions(tickerID int, contract *protocol.Contract, action, quantity int, account string, override int) error {
	return c.Send(&protocol.ExerciseOptions{
		TickerID: tickerID,
		Contract: contract,
		Action:   action,
		Quantity: quantity,
		Account:  account,
		Override: override,
	})
}

// Account and executions

func (c *Client) ReqAccountUpdates(subscribe bool, acctCode string) error {
	return c.Send(&protocol.ReqAccountUpdates{Subscribe: subscribe, AcctCode: acctCode})
}

func (c *Client) ReqExecutions(reqID int, filter protocol.ExecutionFilter) error {
	return c.Send(&protocol.ReqExecutions{ReqID: reqID, Filter: filter})
}

func (c *Client) ReqContractDetails(reqID int, contract *protocol.Contract) error {
	return c.Send(&protocol.ReqContractDetails{ReqID: reqID, Contract: contract})
}

func (c *Client) ReqPositions() error {
	return c.Send(&protocol.ReqPositions{})
}

func (c *Client) CancelPositions() error {
	return c.Send(&protocol.CancelPositions{})
}

func (c *Client) ReqAccountSummary(reqID int, group, tags string) error {
	return c.Send(&protocol.ReqAccountSummary{ReqID: reqID, Group: group, Tags: tags})
}

func (c *Client) CancelAccountSummary(reqID int) error {
	return c.Send(&protocol.CancelAccountSummary{ReqID: reqID})
}

func (c *Client) ReqManagedAccts() error {
	return c.Send(&protocol.ReqManagedAccts{})
}

// RequestFA asks for advisor configuration XML, delivered through
// ReceiveFA.
func (c *Client) RequestFA(dataType int) error {
	return c.Send(&protocol.RequestFA{DataType: dataType})
}

func (c *Client) ReplaceFA(dataType int, xml string) error {
	return c.Send(&protocol.ReplaceFA{DataType: dataType, XML: xml})
}

// Bulletins and server

func (c *Client) ReqNewsBulletins(allMsgs bool) error {
	return c.Send(&protocol.ReqNewsBulletins{AllMsgs: allMsgs})
}

func (c *Client) CancelNewsBulletins() error {
	return c.Send(&protocol.CancelNewsBulletins{})
}

func (c *Client) SetServerLogLevel(level int) error {
	return c.Send(&protocol.SetServerLogLevel{Level: level})
}

func (c *Client) ReqCurrentTime() error {
	return c.Send(&protocol.ReqCurrentTime{})
}

// Linking

// VerifyRequest starts the extra authentication exchange. The session must
// have been opened with Options.ExtraAuth.
func (c *Client) VerifyRequest(apiName, apiVersion string) error {
	return c.send(&protocol.VerifyRequest{APIName: apiName, APIVersion: apiVersion}, func() *clienterr.ClientError {
		if c.extraAuth {
			return nil
		}
		return clienterr.New(clienterr.FailSendVerifyMessage).
			WithDetail("  Intent to authenticate needs to be expressed during initial connect request.").
			WithCause(ErrAuthNotRequested)
	})
}

func (c *Client) VerifyMessage(apiData string) error {
	return c.Send(&protocol.VerifyMessage{APIData: apiData})
}

func (c *Client) QueryDisplayGroups(reqID int) error {
	return c.Send(&protocol.QueryDisplayGroups{ReqID: reqID})
}

func (c *Client) SubscribeToGroupEvents(reqID, groupID int) error {
	return c.Send(&protocol.SubscribeToGroupEvents{ReqID: reqID, GroupID: groupID})
}

func (c *Client) UpdateDisplayGroup(reqID int, contractInfo string) error {
	return c.Send(&protocol.UpdateDisplayGroup{ReqID: reqID, ContractInfo: contractInfo})
}

func (c *Client) UnsubscribeFromGroupEvents(reqID int) error {
	return c.Send(&protocol.UnsubscribeFromGroupEvents{ReqID: reqID})
}
