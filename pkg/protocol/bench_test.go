package protocol

import (
	"bytes"
	"testing"
)

func BenchmarkEncodePlaceOrder(b *testing.B) {
	o := NewOrder()
	o.Action = "BUY"
	o.TotalQuantity = 100
	o.OrderType = "LMT"
	o.LmtPrice = Some(101.25)
	r := &PlaceOrder{OrderID: 1, Contract: stock(), Order: o}

	e := NewEncoder()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Reset()
		if err := r.Encode(e, ClientVersion); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodeReqMktData(b *testing.B) {
	r := &ReqMktData{TickerID: 5, Contract: stock(), GenericTicks: "233"}
	e := NewEncoder()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Reset()
		_ = r.Encode(e, ClientVersion)
	}
}

func BenchmarkDispatchTickPrice(b *testing.B) {
	msg := wire(1, 6, 5, 1, 101.5, 200, 1)
	data := bytes.Repeat(msg, 1000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d := NewDispatcher(NewDecoder(bytes.NewReader(data)), ClientVersion, NopSink{})
		for {
			if _, err := d.Next(); err != nil {
				break
			}
		}
	}
}

func BenchmarkDecoderReadFloat(b *testing.B) {
	data := bytes.Repeat([]byte("1234.5678\x00"), 1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d := NewDecoder(bytes.NewReader(data))
		for j := 0; j < 1000; j++ {
			_, _ = d.ReadFloat()
		}
	}
}
