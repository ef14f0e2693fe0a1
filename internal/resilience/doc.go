// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes circuit breakers guarding the database read path and retry logic
// with exponential backoff for connection establishment.
//
// Usage Example:
//
//	breaker := circuitbreaker.NewDBCircuitBreaker(db)
//	rows, err := breaker.QueryContext(ctx, query, args...)
//
//	retryConfig := retry.DBConfig()
//	err := retry.WithBackoff(ctx, retryConfig, func() error {
//	    return performOperation()
//	})
package resilience
