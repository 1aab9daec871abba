package common

// RequestIDKey is where the logging middleware stores the request id in
// the Gin context.
const RequestIDKey = "requestID"
