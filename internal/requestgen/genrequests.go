package requestgen

import (
	"strconv"
	"strings"
)

type Header struct {
	Key, Value string
}

func Headers(n int) []Header {
	hdrs := make([]Header, 0, n)

	for i := 0; i < n-1; i++ {
		hdrs = append(hdrs, Header{
			Key:   "some-random-header-name-nobody-cares-about" + strconv.Itoa(i),
			Value: strings.Repeat("b", 100),
		})
	}

	return append(hdrs, Header{Key: "Host", Value: "localhost"})
}

func HeadersBlock(hdrs []Header) (buff []byte) {
	for _, pair := range hdrs {
		buff = append(buff, pair.Key+": "+pair.Value+"\r\n"...)
	}

	return buff
}

func Generate(uri string, hdrs []Header) (request []byte) {
	request = append(request, "GET /"+uri+" HTTP/1.1\r\n"...)
	request = append(request, HeadersBlock(hdrs)...)

	return append(request, '\r', '\n')
}

// GenerateWithBody produces a POST request, setting the Content-Length header by itself.
func GenerateWithBody(uri string, hdrs []Header, body string) (request []byte) {
	request = append(request, "POST /"+uri+" HTTP/1.1\r\n"...)
	request = append(request, HeadersBlock(hdrs)...)
	request = append(request, "Content-Length: "+strconv.Itoa(len(body))+"\r\n\r\n"...)

	return append(request, body...)
}
