// Package catalog provides an HTTP client for the remote products API.
//
// # Overview
//
// The dashboard never stores catalog data itself. Every read goes through
// FetchAll and every mutation goes through Create or Update, after which the
// caller reloads the full collection.
//
// # API Endpoints
//
//   - GET    {base}       list of products
//   - POST   {base}       create, JSON body {title, price, description, categoryId, images}
//   - PUT    {base}/{id}  partial update, JSON body with any of {title, price, description}
//
// The base URL is the collection endpoint itself, for example
// https://api.escuelajs.co/api/v1/products.
//
// # Request Handling
//
// All requests:
//   - Use the caller's context for cancellation (no client-side timeout)
//   - Set Accept: application/json and, with a body, Content-Type: application/json
//   - Carry a fresh X-Request-ID that is also attached to log entries
//   - Are attempted exactly once
//
// # Error Handling
//
// Failures come back as one of two typed errors:
//
//   - *NetworkError: transport failure, non-2xx status, undecodable body
//   - *ValidationError: 400/422 from the server, or input rejected locally by
//     struct tag validation before any request is made
//
// Use errors.As, IsNetworkError or IsValidationError to tell them apart.
//
// # Optional Fields
//
// category and images may be missing or empty. Product.CategoryName and
// Product.Thumbnail substitute NoCategory and PlaceholderImage.
package catalog
