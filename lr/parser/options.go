package parser

// Option configures a parser.
type Option func(p *Parser)

// StackCapacity pre-allocates the parser stack.
func StackCapacity(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.stack = make([]stackitem, 0, n)
		}
	}
}

// DisableReuse lets Reparse always parse from scratch.
func DisableReuse(b bool) Option {
	return func(p *Parser) {
		p.reuse = !b
	}
}
