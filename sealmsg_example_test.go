package sealmsg_test

import (
	"bytes"
	"fmt"

	"github.com/wbrc/sealmsg"
)

func ExampleSeal() {
	key, err := sealmsg.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	defer key.Destroy()

	box, err := sealmsg.Seal([]byte("hello,world"), key)
	if err != nil {
		panic(err)
	}

	combined := box.Combined()
	fmt.Printf("sealed %d bytes\n", len(combined))

	msg, err := sealmsg.OpenCombined(combined, key)
	if err != nil {
		panic(err)
	}
	fmt.Printf("opened %q\n", msg)

	// Output:
	// sealed 39 bytes
	// opened "hello,world"
}

func ExampleSealer_SealStream() {
	key, err := sealmsg.NewSymmetricKey(bytes.Repeat([]byte{0x2a}, sealmsg.KeySize))
	if err != nil {
		panic(err)
	}

	s := &sealmsg.Sealer{Cipher: "chacha20-poly1305"}

	var sealed, opened bytes.Buffer
	if err := s.SealStream(bytes.NewBufferString("piped message"), &sealed, 1024, key); err != nil {
		panic(err)
	}
	if err := s.OpenStream(&sealed, &opened, 1024, key); err != nil {
		panic(err)
	}

	fmt.Println(opened.String())
	// Output: piped message
}
