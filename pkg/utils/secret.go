package utils

import "unicode"

// DefaultSecretCode 默认秘籍
const DefaultSecretCode = "hbd"

// SecretSequence 按键序列检测器
//
// 逐个喂入按键，完整输入一次秘籍时 Feed 返回 true。
// 输错的按键如果恰好是秘籍首字母，则作为新的开始。
type SecretSequence struct {
	code []rune
	pos  int
}

// NewSecretSequence 创建检测器，code 为空时使用 DefaultSecretCode
func NewSecretSequence(code string) *SecretSequence {
	if code == "" {
		code = DefaultSecretCode
	}
	runes := []rune(code)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return &SecretSequence{code: runes}
}

// Feed 输入一个按键
func (s *SecretSequence) Feed(r rune) bool {
	r = unicode.ToLower(r)
	if r == s.code[s.pos] {
		s.pos++
		if s.pos == len(s.code) {
			s.pos = 0
			return true
		}
		return false
	}
	s.pos = 0
	if r == s.code[0] {
		s.pos = 1
	}
	return false
}

// Reset 清空已输入的前缀
func (s *SecretSequence) Reset() {
	s.pos = 0
}
