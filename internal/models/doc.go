// Package models defines domain entities for the scorelib catalog service.
//
// The package contains two categories of types:
//
// 1. [Score]: one catalogued piece of music. Title and composer are required;
// arranger, genres, difficulty, duration and notes are optional. IDs and
// timestamps are assigned by the record store on creation.
//
// 2. Genre list helpers: the shared genre list is an ordered-on-read set of
// names that is unique ignoring case. [DefaultGenres] seeds the list on first
// access; [ContainsFold] and [MergeGenres] implement the case-insensitive set
// semantics used by the store implementations and the legacy migration task.
package models
