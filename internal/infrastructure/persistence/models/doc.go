// Package models contains GORM persistence models for the distributor tables.
// Domain entities stay free of ORM tags; each model carries the table mapping
// plus ToDomain/FromDomain mappers used by the repositories.
//
// Tables:
//   - users
//   - debts, payment_plans, payment_plan_installments
//   - invoices, invoice_payments
package models
