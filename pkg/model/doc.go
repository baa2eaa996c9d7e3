// Package model contains the GORM models for the dashboard's resource rows.
//
// Every row kind carries an owner, a status drawn from a small closed set,
// and a nullable deleted_at timestamp. Rows are never physically removed;
// deletion stamps deleted_at and the stores exclude stamped rows from every
// query.
package model
