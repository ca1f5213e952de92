/*
Package observability provides tools for monitoring and introspecting focus propagation.

It includes a Trace that records every lifecycle event in emission order,
Prometheus metrics derived from the same records, and an Aggregator that fans
one observer slot out to several observers.
*/
package observability
