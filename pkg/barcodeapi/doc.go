// Package barcodeapi is a client for the barcodeapi.org REST service.
//
// A Client turns method calls into single HTTP round trips against a
// configurable base URL: it builds the request URL and body, injects the
// Authorization header when a token is set, and decodes the response.
// Nothing is retried or cached; every failure is returned to the caller.
//
//	client := barcodeapi.New(barcodeapi.WithToken(os.Getenv("BARCODEAPI_TOKEN")))
//	img, err := client.Generate(ctx, "hello world", "qr", nil)
//
// Errors fall into four kinds: transport failures (returned wrapped),
// *StatusError for non-2xx responses, *DecodeError for invalid JSON
// bodies, and ErrInvalidInput for unusable byte sources.
package barcodeapi
