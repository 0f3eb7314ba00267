// Package docstore persists exported documents in a bbolt file, one
// msgpack-encoded record per key. The stored record carries the same
// version tag as the in-memory interchange value; Get rejects records with
// an unexpected tag.
package docstore

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	bolt "go.etcd.io/bbolt"

	finnaxml "github.com/NatLibFi/finna-xml"
	finnaerrors "github.com/NatLibFi/finna-xml/errors"
)

var bucketDocuments = []byte("documents")

// Store is a key to document store backed by a single bbolt file.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the store file at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open document store %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDocuments)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open document store %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

type record struct {
	_msgpack   struct{} `msgpack:",asArray"`
	Version    int
	Root       wireNode
	Namespaces map[string]string
}

type wireNode struct {
	_msgpack struct{} `msgpack:",asArray"`
	Name     string
	Value    string
	Attrs    []wireAttr
	Children []wireNode
}

type wireAttr struct {
	_msgpack struct{} `msgpack:",asArray"`
	Name     string
	Value    string
}

func toWire(n *finnaxml.Node) wireNode {
	out := wireNode{Name: n.Name(), Value: n.Value()}
	for _, a := range n.Attrs() {
		out.Attrs = append(out.Attrs, wireAttr{Name: a.Name, Value: a.Value})
	}
	for _, c := range n.Children() {
		out.Children = append(out.Children, toWire(c))
	}
	return out
}

func fromWire(w wireNode) *finnaxml.Node {
	n := finnaxml.NewNode(w.Name)
	n.SetValue(w.Value)
	for _, a := range w.Attrs {
		n.SetAttr(a.Name, a.Value)
	}
	for _, c := range w.Children {
		n.AppendChild(fromWire(c))
	}
	return n
}

// Put stores the exported document under key, overwriting any previous
// record.
func (s *Store) Put(key string, pd *finnaxml.ParsedDocument) error {
	if pd == nil || pd.Root == nil || pd.Version != finnaxml.ParsedDocumentVersion {
		return finnaerrors.InvalidFormat("invalid parsed document format")
	}
	data, err := msgpack.Marshal(record{
		Version:    pd.Version,
		Root:       toWire(pd.Root),
		Namespaces: pd.Namespaces,
	})
	if err != nil {
		return fmt.Errorf("encode document %s: %w", key, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDocuments).Put([]byte(key), data)
	})
}

// Get fetches the document stored under key. A missing key yields a nil
// document and no error; a record with the wrong version tag fails the
// shape check.
func (s *Store) Get(key string) (*finnaxml.ParsedDocument, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketDocuments).Get([]byte(key)); v != nil {
			data = append(data, v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var rec record
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, finnaerrors.InvalidFormat("undecodable document record: " + err.Error())
	}
	if rec.Version != finnaxml.ParsedDocumentVersion {
		return nil, finnaerrors.InvalidFormat("invalid parsed document format")
	}
	return &finnaxml.ParsedDocument{
		Version:    rec.Version,
		Root:       fromWire(rec.Root),
		Namespaces: rec.Namespaces,
	}, nil
}

// Delete removes the record under key if present.
func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDocuments).Delete([]byte(key))
	})
}

// Keys lists the stored keys in byte order.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDocuments).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}
