// Package archive persists the large text payloads a gateway returns
// (fundamental data reports, financial advisor XML and scanner
// parameters) to an S3 bucket.
//
// An Archive wraps another protocol.Sink. Every callback is forwarded
// unchanged; the three payload callbacks are additionally queued for
// upload by a single background worker so the connection's reader is
// never blocked on S3.
//
//	client := s3.New(s3.Options{Region: "us-east-1", Credentials: creds})
//	a := archive.New(next, client, archive.Config{Bucket: "reports", Prefix: "tws/"})
//	defer a.Close(context.Background())
//
// Object keys are laid out as
//
//	<prefix>fundamental/<reqId>-<unix-nanos>.xml
//	<prefix>fa/<groups|profiles|aliases>-<unix-nanos>.xml
//	<prefix>scanner/parameters-<unix-nanos>.xml
package archive
