package search

import "strings"

// Where renders the compiled expression as a single SQL condition,
// appending every bound value to args. Criteria inside a group are
// joined by the group's operator and each group is parenthesized, so
// "(A OR B) AND C" composes exactly as written. Groups and criteria
// are rendered in request order, which keeps placeholder numbering
// deterministic for a given request.
//
// An empty expression (no groups) renders as "TRUE" so callers can
// always append it after their tenant clause.
func (c *Compiled) Where(args *ArgList) string {
	if len(c.groups) == 0 {
		return "TRUE"
	}

	rendered := make([]string, 0, len(c.groups))
	for _, g := range c.groups {
		parts := make([]string, 0, len(g.criteria))
		for _, crit := range g.criteria {
			parts = append(parts, buildPredicate(crit, args))
		}
		rendered = append(rendered, "("+strings.Join(parts, g.operator.sqlJoin())+")")
	}
	if len(rendered) == 1 {
		return rendered[0]
	}
	return strings.Join(rendered, c.groupOperator.sqlJoin())
}
