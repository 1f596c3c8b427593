package crypto

import (
	"encoding/json"
	"os"
	"reflect"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	keystorev4 "github.com/wealdtech/go-eth2-wallet-encryptor-keystorev4"
)

// Secp256k1Keystore keeps a permit signing key encrypted on disk
type Secp256k1Keystore = Keystore[*Secp256k1PrivateKey, *Secp256k1PublicKey]

type KeystoreKey interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

type KeystoreInfo struct {
	KeyType     string            `json:"key_type"`
	PrivateKey  map[string]any    `json:"private_key"`
	PublicKey   string            `json:"public_key"`
	Address     string            `json:"address,omitempty"`
	Version     uint              `json:"version"`
	Description string            `json:"description"`
	Extra       map[string]string `json:"extra"`
}

type Keystore[PriKey KeystoreKey, PubKey KeystoreKey] struct {
	version             uint
	encryptedPrivateKey map[string]any

	Path        string
	KeyType     string
	Address     string
	Description string
	PrivateKey  PriKey
	PublicKey   PubKey
	Password    string
	Extra       map[string]string
}

// NewSecp256k1Keystore wraps key so it can be written encrypted with password
func NewSecp256k1Keystore(path string, key *Secp256k1PrivateKey, password string, description string) *Secp256k1Keystore {
	return &Secp256k1Keystore{
		Path:        path,
		KeyType:     KeyTypeSecp256k1,
		Address:     key.Address().String(),
		Description: description,
		PrivateKey:  key,
		PublicKey:   key.PublicKey(),
		Password:    password,
		Extra:       map[string]string{},
	}
}

func ReadKeystoreInfo(path string) (*KeystoreInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read keystore %s", path)
	}
	var info KeystoreInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal keystore %s", path)
	}
	return &info, nil
}

func WriteKeystoreInfo(path string, info *KeystoreInfo) error {
	raw, err := json.MarshalIndent(info, "", "\t")
	if err != nil {
		return errors.Wrapf(err, "failed to marshal keystore %s", path)
	}

	if err := os.WriteFile(path, raw, 0600); err != nil {
		return errors.Wrapf(err, "failed to write keystore %s", path)
	}
	return nil
}

func ReadKeystore[PriKey KeystoreKey, PubKey KeystoreKey](path string) (*Keystore[PriKey, PubKey], error) {
	info, err := ReadKeystoreInfo(path)
	if err != nil {
		return nil, err
	}

	publicKeyBytes, err := hexutil.Decode(info.PublicKey)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode public key in keystore %s", path)
	}
	publicKey := initPointer[PubKey]()
	if err := publicKey.Unmarshal(publicKeyBytes); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal public key in keystore %s", path)
	}

	return &Keystore[PriKey, PubKey]{
		version:             info.Version,
		encryptedPrivateKey: info.PrivateKey,
		Path:                path,
		KeyType:             info.KeyType,
		Address:             info.Address,
		Description:         info.Description,
		PublicKey:           publicKey,
		Extra:               info.Extra,
	}, nil
}

func (ks *Keystore[PriKey, PubKey]) DecryptPrivateKey(password string) error {
	decoder := keystorev4.New()
	if ks.version != decoder.Version() {
		return errors.Errorf("keystore %s has invalid version %d, expected %d", ks.Path, ks.version, decoder.Version())
	}

	privateKeyBytes, err := decoder.Decrypt(ks.encryptedPrivateKey, password)
	if err != nil {
		return errors.Wrapf(err, "failed to decrypt private key in keystore %s", ks.Path)
	}
	privateKey := initPointer[PriKey]()
	if err := privateKey.Unmarshal(privateKeyBytes); err != nil {
		return errors.Wrapf(err, "failed to unmarshal private key in keystore %s", ks.Path)
	}

	ks.PrivateKey = privateKey
	ks.Password = password
	return nil
}

func (ks *Keystore[PriKey, PubKey]) Write() error {
	privateKeyBytes, err := ks.PrivateKey.Marshal()
	if err != nil {
		return errors.Wrapf(err, "failed to marshal private key in keystore %s", ks.Path)
	}
	publicKeyBytes, err := ks.PublicKey.Marshal()
	if err != nil {
		return errors.Wrapf(err, "failed to marshal public key in keystore %s", ks.Path)
	}

	encoder := keystorev4.New()
	encryptedPrivateKey, err := encoder.Encrypt(privateKeyBytes, ks.Password)
	if err != nil {
		return errors.Wrapf(err, "failed to encrypt private key in keystore %s", ks.Path)
	}
	return WriteKeystoreInfo(ks.Path, &KeystoreInfo{
		KeyType:     ks.KeyType,
		PrivateKey:  encryptedPrivateKey,
		PublicKey:   hexutil.Encode(publicKeyBytes),
		Address:     ks.Address,
		Version:     encoder.Version(),
		Description: ks.Description,
		Extra:       ks.Extra,
	})
}

func initPointer[P any]() P {
	var p P
	typ := reflect.TypeOf(p)
	if typ.Kind() != reflect.Ptr {
		panic("p must be a pointer")
	}
	ptr := reflect.New(typ.Elem()).Interface()
	return ptr.(P)
}

func IsZeroBytes(bytes []byte) bool {
	b := byte(0)
	for _, s := range bytes {
		b |= s
	}
	return b == 0
}
