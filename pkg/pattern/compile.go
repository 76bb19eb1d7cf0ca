package pattern

import (
	"strconv"

	"github.com/mathcrusader/vargen/pkg/expr"
	"github.com/mathcrusader/vargen/pkg/mverrors"
)

type compiler struct {
	src string
	pos int
}

func compile(src string) ([]sequence, error) {
	c := &compiler{src: src}
	alts, err := c.parseAlternation()
	if err != nil {
		return nil, err
	}
	if c.pos != len(c.src) {
		return nil, &mverrors.InvalidExpression{Expression: src, Message: "unexpected character at position " + strconv.Itoa(c.pos)}
	}
	return alts, nil
}

func (c *compiler) peek() (byte, bool) {
	if c.pos >= len(c.src) {
		return 0, false
	}
	return c.src[c.pos], true
}

func (c *compiler) parseAlternation() ([]sequence, error) {
	first, err := c.parseSequence()
	if err != nil {
		return nil, err
	}
	alts := []sequence{first}
	for {
		b, ok := c.peek()
		if !ok || b != '|' {
			break
		}
		c.pos++
		seq, err := c.parseSequence()
		if err != nil {
			return nil, err
		}
		alts = append(alts, seq)
	}
	return alts, nil
}

func (c *compiler) parseSequence() (sequence, error) {
	var seq sequence
	for {
		b, ok := c.peek()
		if !ok || b == '|' || b == ')' {
			break
		}
		a, err := c.parseAtom()
		if err != nil {
			return nil, err
		}
		seq = append(seq, a)
	}
	return seq, nil
}

func (c *compiler) parseAtom() (atom, error) {
	b, ok := c.peek()
	if !ok {
		return atom{}, &mverrors.InvalidExpression{Expression: c.src, Message: "unexpected end of pattern"}
	}

	var a atom
	switch {
	case b == '(':
		c.pos++
		alts, err := c.parseAlternation()
		if err != nil {
			return atom{}, err
		}
		nb, ok := c.peek()
		if !ok || nb != ')' {
			return atom{}, &mverrors.InvalidExpression{Expression: c.src, Message: "unterminated group"}
		}
		c.pos++
		a = atom{kind: atomGroup, group: alts}
	case b == '[':
		cls, err := c.parseClass()
		if err != nil {
			return atom{}, err
		}
		a = atom{kind: atomClass, class: cls}
	case b == '\\':
		c.pos++
		lb, ok := c.peek()
		if !ok {
			return atom{}, &mverrors.InvalidExpression{Expression: c.src, Message: "dangling escape"}
		}
		c.pos++
		a = atom{kind: atomLiteral, lit: lb}
	default:
		c.pos++
		a = atom{kind: atomLiteral, lit: b}
	}

	q, err := c.parseQuant()
	if err != nil {
		return atom{}, err
	}
	a.q = q
	return a, nil
}

func (c *compiler) parseClass() (*charClass, error) {
	// assumes current byte is '['
	c.pos++
	cls := &charClass{}
	if b, ok := c.peek(); ok && b == '^' {
		cls.negate = true
		c.pos++
	}
	first := true
	for {
		b, ok := c.peek()
		if !ok {
			return nil, &mverrors.InvalidExpression{Expression: c.src, Message: "unterminated character class"}
		}
		if b == ']' && !first {
			c.pos++
			break
		}
		first = false

		lo, err := c.readClassChar()
		if err != nil {
			return nil, err
		}
		hi := lo
		if nb, ok := c.peek(); ok && nb == '-' {
			// Lookahead: a '-' immediately before ']' is a literal dash.
			if c.pos+1 < len(c.src) && c.src[c.pos+1] != ']' {
				c.pos++
				hi, err = c.readClassChar()
				if err != nil {
					return nil, err
				}
			}
		}
		if hi < lo {
			return nil, &mverrors.InvalidExpression{Expression: c.src, Message: "invalid class range (end before start)"}
		}
		cls.ranges = append(cls.ranges, byteRange{lo: lo, hi: hi})
	}
	if len(cls.ranges) == 0 {
		return nil, &mverrors.InvalidExpression{Expression: c.src, Message: "empty character class"}
	}
	return cls, nil
}

func (c *compiler) readClassChar() (byte, error) {
	b, ok := c.peek()
	if !ok {
		return 0, &mverrors.InvalidExpression{Expression: c.src, Message: "unterminated character class"}
	}
	if b == '\\' {
		c.pos++
		b, ok = c.peek()
		if !ok {
			return 0, &mverrors.InvalidExpression{Expression: c.src, Message: "dangling escape in class"}
		}
	}
	c.pos++
	return b, nil
}

func (c *compiler) parseQuant() (quantifier, error) {
	b, ok := c.peek()
	if !ok {
		return quantifier{kind: qOne}, nil
	}
	switch b {
	case '?':
		c.pos++
		return quantifier{kind: qOptional}, nil
	case '*':
		c.pos++
		return quantifier{kind: qStar}, nil
	case '+':
		c.pos++
		return quantifier{kind: qPlus}, nil
	case '{':
		c.pos++
		first, err := c.readExprUntil(",}")
		if err != nil {
			return quantifier{}, err
		}
		sep, ok := c.peek()
		if !ok {
			return quantifier{}, &mverrors.InvalidExpression{Expression: c.src, Message: "unterminated quantifier"}
		}
		if sep == '}' {
			c.pos++
			n, err := expr.Parse(first)
			if err != nil {
				return quantifier{}, err
			}
			return quantifier{kind: qExact, n: n}, nil
		}
		// sep == ','
		c.pos++
		second, err := c.readExprUntil("}")
		if err != nil {
			return quantifier{}, err
		}
		cb, ok := c.peek()
		if !ok || cb != '}' {
			return quantifier{}, &mverrors.InvalidExpression{Expression: c.src, Message: "unterminated quantifier"}
		}
		c.pos++
		m, err := expr.Parse(first)
		if err != nil {
			return quantifier{}, err
		}
		n, err := expr.Parse(second)
		if err != nil {
			return quantifier{}, err
		}
		return quantifier{kind: qRange, n: m, m: n}, nil
	default:
		return quantifier{kind: qOne}, nil
	}
}

func (c *compiler) readExprUntil(stop string) (string, error) {
	start := c.pos
	for {
		b, ok := c.peek()
		if !ok {
			return "", &mverrors.InvalidExpression{Expression: c.src, Message: "unterminated quantifier expression"}
		}
		for i := 0; i < len(stop); i++ {
			if b == stop[i] {
				return c.src[start:c.pos], nil
			}
		}
		c.pos++
	}
}
