package lsp

import protocol "github.com/tliron/glsp/protocol_3_16"

func (s *Server) document(uri protocol.DocumentUri) (*document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

// store keeps doc unless a newer version of the same buffer is already stored.
func (s *Server) store(doc *document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.docs[doc.uri]; ok && prev.version > doc.version {
		return
	}
	s.docs[doc.uri] = doc
}

func (s *Server) drop(uri protocol.DocumentUri) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}
