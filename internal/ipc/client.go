package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// DialTimeout bounds how long Dial waits for the daemon socket.
const DialTimeout = 2 * time.Second

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, DialTimeout)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
	return nil
}

// Get returns the daemon's active language.
func (c *Client) Get() (*GetResponse, error) {
	var resp GetResponse
	if err := c.client.Call(ServiceName+".Get", GetRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Set asks the daemon to change the active language. A nil code is sent as
// a null input.
func (c *Client) Set(code *string) (*SetResponse, error) {
	var resp SetResponse
	if err := c.client.Call(ServiceName+".Set", SetRequest{Language: code}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call(ServiceName+".Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Languages returns the daemon's built-in language table.
func (c *Client) Languages() (*LanguagesResponse, error) {
	var resp LanguagesResponse
	if err := c.client.Call(ServiceName+".Languages", LanguagesRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
