// Package filter provides the composable predicate algebra compiled into
// WHERE fragments.
//
// Predicates are immutable trees built bottom-up:
//
//	f := filter.And(
//	    filter.EQ(filter.C("users", "active"), schema.BoolValue(true)),
//	    filter.Or(
//	        filter.GT(filter.C("users", "age"), schema.Int32Value(18)),
//	        filter.Like(filter.C("users", "role"), "admin%"),
//	    ),
//	)
//
// Column references are validated when the enclosing statement compiles,
// so a filter can be built before its joins are attached and reused across
// statements. Compilation emits placeholders through the dialect profile
// and returns bind values in exact placeholder order; values are never
// inlined into the fragment.
package filter
