package http1

// trackBody decides whether the request is complete, once the headers block is over.
// The body is bounded by Content-Length only. Bytes beyond it are never claimed, but
// returned as an extra, as they belong to the next request.
func (p *Parser) trackBody(data []byte) (RequestState, []byte, error) {
	if p.contentLength <= 0 {
		return p.complete(data, p.bodyStart)
	}

	p.bodyReceived = min(len(data)-p.bodyStart, p.contentLength)
	if p.bodyReceived < p.contentLength {
		return Pending, nil, nil
	}

	return p.complete(data, p.bodyStart+p.contentLength)
}

func (p *Parser) complete(data []byte, boundary int) (RequestState, []byte, error) {
	p.state = Ok
	p.bodyBoundary = boundary

	return Ok, data[boundary:], nil
}
