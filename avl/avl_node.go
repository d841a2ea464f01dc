package avl

type avlNode struct {
	key    OrderedPair // Point (e.g., (3.0,4.0))
	height int
	left   *avlNode
	right  *avlNode
}

func newAVLNode(key OrderedPair) *avlNode {
	return &avlNode{key: key, height: 1}
}
