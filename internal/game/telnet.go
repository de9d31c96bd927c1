package game

import (
	"bufio"
	"bytes"
	"net"
	"strings"
	"sync"

	"golang.org/x/text/encoding/charmap"
)

const (
	telnetIAC  byte = 255
	telnetDONT byte = 254
	telnetDO   byte = 253
	telnetWONT byte = 252
	telnetWILL byte = 251
	telnetSB   byte = 250
	telnetSE   byte = 240
	telnetNOP  byte = 241
	telnetDM   byte = 242
	telnetBRK  byte = 243
	telnetIP   byte = 244
	telnetAO   byte = 245
	telnetAYT  byte = 246
	telnetEC   byte = 247
	telnetEL   byte = 248
	telnetGA   byte = 249
)

const (
	telnetOptEcho         byte = 1
	telnetOptSuppressGA   byte = 3
	telnetOptTerminalType byte = 24
	telnetOptWindowSize   byte = 31
	telnetOptLineMode     byte = 34
	telnetOptCharset      byte = 42
)

const (
	charsetRequest  byte = 1
	charsetAccepted byte = 2
	charsetRejected byte = 3
)

var (
	serverSupportedOptions = map[byte]bool{
		telnetOptSuppressGA: true,
		telnetOptCharset:    true,
	}
	clientSupportedOptions = map[byte]bool{
		telnetOptTerminalType: true,
		telnetOptWindowSize:   true,
		telnetOptCharset:      true,
	}
)

// charsetTable maps normalised charset tokens onto encodings. A nil entry
// means the charset is handled natively (UTF-8 and its ASCII subset).
var charsetTable = map[string]*charmap.Charmap{
	"UTF8":     nil,
	"ASCII":    nil,
	"USASCII":  nil,
	"ISO88591": charmap.ISO8859_1,
	"LATIN1":   charmap.ISO8859_1,
	"CP437":    charmap.CodePage437,
	"IBM437":   charmap.CodePage437,
}

type TelnetSession struct {
	conn    net.Conn
	reader  *bufio.Reader
	mu      sync.Mutex
	width   int
	height  int
	term    string
	charset string
	cm      *charmap.Charmap
}

func NewTelnetSession(conn net.Conn) *TelnetSession {
	s := &TelnetSession{
		conn:    conn,
		reader:  bufio.NewReader(conn),
		width:   80,
		height:  24,
		charset: "UTF-8",
	}
	s.performHandshake()
	return s
}

func (s *TelnetSession) performHandshake() {
	_ = s.writeCommand(telnetWILL, telnetOptSuppressGA)
	_ = s.writeCommand(telnetWONT, telnetOptEcho)
	_ = s.writeCommand(telnetDONT, telnetOptLineMode)
	_ = s.writeCommand(telnetDO, telnetOptTerminalType)
	_ = s.writeCommand(telnetDO, telnetOptWindowSize)
	_ = s.writeCommand(telnetDO, telnetOptCharset)
}

func (s *TelnetSession) writeCommand(cmd, opt byte) error {
	return s.writeRaw([]byte{telnetIAC, cmd, opt})
}

func (s *TelnetSession) writeRaw(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.conn.Write(payload)
	return err
}

func (s *TelnetSession) WriteString(msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := []byte(msg)
	if s.cm != nil {
		data = encodeWithCharmap(s.cm, data)
	}
	_, err := s.conn.Write(translateForTelnet(data))
	return err
}

// translateForTelnet prepares raw output for the wire: bare newlines become
// CRLF and literal IAC bytes are doubled.
func translateForTelnet(msg []byte) []byte {
	var buf bytes.Buffer
	var prev byte
	for i := 0; i < len(msg); i++ {
		b := msg[i]
		switch b {
		case '\n':
			if prev != '\r' {
				buf.WriteByte('\r')
			}
			buf.WriteByte('\n')
		case telnetIAC:
			buf.WriteByte(telnetIAC)
			buf.WriteByte(telnetIAC)
		default:
			buf.WriteByte(b)
		}
		prev = b
	}
	return buf.Bytes()
}

// normalizeToken canonicalises a charset token for table lookup.
func normalizeToken(token string) string {
	token = strings.ToUpper(strings.TrimSpace(token))
	token = strings.ReplaceAll(token, "-", "")
	token = strings.ReplaceAll(token, "_", "")
	return token
}

// parseCharsetList splits a charset offer on its separator, dropping empty
// entries.
func parseCharsetList(list string) []string {
	parts := strings.Split(list, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// encodeWithCharmap converts UTF-8 output into the negotiated single-byte
// charset; unmappable runes degrade to '?'.
func encodeWithCharmap(cm *charmap.Charmap, data []byte) []byte {
	out := make([]byte, 0, len(data))
	for _, r := range string(data) {
		if b, ok := cm.EncodeRune(r); ok {
			out = append(out, b)
		} else {
			out = append(out, '?')
		}
	}
	return out
}

// decodeWithCharmap converts client bytes in the negotiated single-byte
// charset back into UTF-8.
func decodeWithCharmap(cm *charmap.Charmap, data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		b.WriteRune(cm.DecodeByte(c))
	}
	return b.String()
}

// sanitizeTelnetString strips control bytes from a subnegotiation payload.
func sanitizeTelnetString(data []byte) string {
	out := make([]byte, 0, len(data))
	for _, b := range data {
		if b < 0x20 || b == 0x7f {
			continue
		}
		out = append(out, b)
	}
	return string(out)
}

func (s *TelnetSession) ReadLine() (string, error) {
	var buf bytes.Buffer
	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			return "", err
		}
		switch b {
		case '\r':
			if next, err := s.reader.Peek(1); err == nil && next[0] == '\n' {
				_, _ = s.reader.ReadByte()
			}
			return s.decodeLine(buf.Bytes()), nil
		case '\n':
			return s.decodeLine(buf.Bytes()), nil
		case 0x08, 0x7f:
			bs := buf.Bytes()
			if len(bs) > 0 {
				buf.Truncate(len(bs) - 1)
			}
		case 0x00:
			// ignore NULs
		case telnetIAC:
			if err := s.handleIAC(&buf); err != nil {
				return "", err
			}
		default:
			buf.WriteByte(b)
		}
	}
}

func (s *TelnetSession) decodeLine(line []byte) string {
	if s.cm != nil {
		return decodeWithCharmap(s.cm, line)
	}
	return string(line)
}

func (s *TelnetSession) handleIAC(buf *bytes.Buffer) error {
	cmd, err := s.reader.ReadByte()
	if err != nil {
		return err
	}
	switch cmd {
	case telnetIAC:
		buf.WriteByte(telnetIAC)
	case telnetDO, telnetDONT, telnetWILL, telnetWONT:
		opt, err := s.reader.ReadByte()
		if err != nil {
			return err
		}
		s.handleNegotiation(cmd, opt)
	case telnetSB:
		return s.handleSubnegotiation()
	case telnetNOP, telnetDM, telnetBRK, telnetIP, telnetAO, telnetAYT, telnetEC, telnetEL, telnetGA:
		// ignored control commands
	default:
		// ignore anything unknown to keep stream resilient
	}
	return nil
}

func (s *TelnetSession) handleNegotiation(cmd, opt byte) {
	switch cmd {
	case telnetDO:
		if serverSupportedOptions[opt] {
			_ = s.writeCommand(telnetWILL, opt)
		} else {
			_ = s.writeCommand(telnetWONT, opt)
		}
	case telnetDONT:
		_ = s.writeCommand(telnetWONT, opt)
	case telnetWILL:
		if clientSupportedOptions[opt] {
			_ = s.writeCommand(telnetDO, opt)
		} else {
			_ = s.writeCommand(telnetDONT, opt)
		}
	case telnetWONT:
		_ = s.writeCommand(telnetDONT, opt)
	}
}

func (s *TelnetSession) handleSubnegotiation() error {
	opt, err := s.reader.ReadByte()
	if err != nil {
		return err
	}
	payload := make([]byte, 0, 16)
	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			return err
		}
		if b == telnetIAC {
			esc, err := s.reader.ReadByte()
			if err != nil {
				return err
			}
			if esc == telnetIAC {
				payload = append(payload, telnetIAC)
				continue
			}
			if esc == telnetSE {
				break
			}
			// unexpected command inside subnegotiation, ignore and continue
			continue
		}
		payload = append(payload, b)
	}

	switch opt {
	case telnetOptTerminalType:
		if len(payload) > 1 && payload[0] == 0 { // IS
			s.term = strings.ToUpper(sanitizeTelnetString(payload[1:]))
		}
	case telnetOptWindowSize:
		if len(payload) >= 4 {
			s.width = int(payload[0])<<8 | int(payload[1])
			s.height = int(payload[2])<<8 | int(payload[3])
		}
	case telnetOptCharset:
		s.handleCharsetRequest(payload)
	}
	return nil
}

// handleCharsetRequest answers an RFC 2066 charset offer, accepting the first
// charset the session can encode.
func (s *TelnetSession) handleCharsetRequest(payload []byte) {
	if len(payload) < 2 || payload[0] != charsetRequest {
		return
	}
	for _, name := range parseCharsetList(sanitizeTelnetString(payload[1:])) {
		cm, known := charsetTable[normalizeToken(name)]
		if !known {
			continue
		}
		s.charset = name
		s.cm = cm
		reply := append([]byte{charsetAccepted}, []byte(name)...)
		s.sendSubnegotiation(telnetOptCharset, reply)
		return
	}
	s.sendSubnegotiation(telnetOptCharset, []byte{charsetRejected})
}

func (s *TelnetSession) sendSubnegotiation(opt byte, payload []byte) {
	msg := append([]byte{telnetIAC, telnetSB, opt}, payload...)
	msg = append(msg, telnetIAC, telnetSE)
	_ = s.writeRaw(msg)
}

func (s *TelnetSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

func (s *TelnetSession) Size() (int, int) {
	return s.width, s.height
}

func (s *TelnetSession) Terminal() string {
	return s.term
}

// Charset reports the negotiated client charset label.
func (s *TelnetSession) Charset() string {
	return s.charset
}
